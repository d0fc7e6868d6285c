package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"seo-content-go/pkg/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	keyword    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	markdown   TEXT NOT NULL,
	payload    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_keyword ON documents(keyword);
`

// SQLiteStore keeps documents in a single SQLite database under the output directory.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
	log  *logger.Logger
}

// NewSQLiteStore opens (and creates if needed) dir/documents.db.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	dbPath := filepath.Join(dir, "documents.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: dbPath,
		now:  time.Now,
		log:  logger.GetLogger().Component("sqlite_store"),
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Save inserts doc, replacing any previous row with the same id.
func (s *SQLiteStore) Save(ctx context.Context, doc *Document) (string, error) {
	if err := ensureID(doc); err != nil {
		return "", err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, keyword, created_at, markdown, payload) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Keyword, doc.CreatedAt.Format(time.RFC3339Nano), doc.Content.Content, string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"id":      doc.ID,
		"keyword": doc.Keyword,
	}).Info("Document saved")
	return doc.ID, nil
}

// Load returns the document stored under id.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// List returns the stored ids in lexical order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Open returns the store selected by driver: "file" or "sqlite".
func Open(driver, dir string) (Store, error) {
	switch driver {
	case "", "file":
		return NewFileStore(dir)
	case "sqlite":
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
