package pipeline

import (
	"errors"
	"strings"
)

// ErrNoKeywordFile is returned when a run starts without an uploaded keyword export.
var ErrNoKeywordFile = errors.New("no keyword file in session")

// Session carries the per-user state of a run: the keyword export the user uploaded.
// It replaces any process-wide "last upload" so concurrent users never share files.
type Session struct {
	ID      string
	CSVPath string
}

// NewSession creates a session bound to the uploaded export at csvPath.
func NewSession(id, csvPath string) *Session {
	return &Session{ID: id, CSVPath: strings.TrimSpace(csvPath)}
}

func (s *Session) validate() error {
	if s == nil || s.CSVPath == "" {
		return ErrNoKeywordFile
	}
	return nil
}

// CategoryInput describes the category page to write.
type CategoryInput struct {
	// Keyword is the main category keyword.
	Keyword string `json:"keyword"`
	// SiteProducts are product names shown on the page. When empty and CategoryURL is
	// set, they are scraped.
	SiteProducts []string `json:"site_products,omitempty"`
	CategoryURL  string   `json:"category_url,omitempty"`
	// ParentURL and ParentName give the internal link to the parent category.
	ParentURL  string `json:"parent_url,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
	// SerpKeywords overrides the keywords searched for competitors; defaults to Keyword.
	SerpKeywords []string `json:"serp_keywords,omitempty"`
}
