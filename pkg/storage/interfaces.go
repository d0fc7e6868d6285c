package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"seo-content-go/pkg/extractor"
	"seo-content-go/pkg/serp"
)

var (
	// ErrNotFound is returned when a stored document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when a caller-supplied document id is not a UUID.
	ErrInvalidID = errors.New("invalid document id")
)

// ensureID gives doc a fresh UUID when it has none and rejects any other id shape, so
// ids are always safe to use as file names.
func ensureID(doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
		return nil
	}
	if _, err := uuid.Parse(doc.ID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, doc.ID)
	}
	return nil
}

// Document is one generated category page together with the data it was built from.
type Document struct {
	ID        string                     `json:"id"`
	Keyword   string                     `json:"keyword"`
	CreatedAt time.Time                  `json:"created_at"`
	Content   extractor.ExtractedContent `json:"content"`
	Products  []string                   `json:"products"`
	Serp      []serp.PromptItem          `json:"serp"`
}

// Store persists generated documents.
type Store interface {
	Save(ctx context.Context, doc *Document) (string, error)
	Load(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]string, error)
}
