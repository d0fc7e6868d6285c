package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"seo-content-go/pkg/logger"
)

const (
	markdownExt = ".md"
	sidecarExt  = ".json"
)

// FileStore keeps each document as <id>.md with the raw generated text and <id>.json
// with the extracted fields.
type FileStore struct {
	dir string
	now func() time.Time
	log *logger.Logger
}

// NewFileStore creates the output directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileStore{
		dir: dir,
		now: time.Now,
		log: logger.GetLogger().Component("file_store"),
	}, nil
}

// Save assigns an id and creation time when missing and writes both files.
func (s *FileStore) Save(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ensureID(doc); err != nil {
		return "", err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	if err := writeFileAtomic(s.path(doc.ID, markdownExt), []byte(doc.Content.Content)); err != nil {
		return "", fmt.Errorf("failed to write markdown: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := writeFileAtomic(s.path(doc.ID, sidecarExt), data); err != nil {
		return "", fmt.Errorf("failed to write sidecar: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"id":      doc.ID,
		"keyword": doc.Keyword,
	}).Info("Document saved")
	return doc.ID, nil
}

// Load reads the sidecar of id.
func (s *FileStore) Load(ctx context.Context, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}

	data, err := os.ReadFile(s.path(id, sidecarExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// List returns the stored ids in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, sidecarExt) {
			continue
		}
		id := strings.TrimSuffix(name, sidecarExt)
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) path(id, ext string) string {
	return filepath.Join(s.dir, id+ext)
}

// writeFileAtomic writes through a temp file in the same directory and renames it.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
