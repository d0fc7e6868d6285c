// Package scraper finds product names on e-commerce category pages whose layout is not
// known in advance. It guesses the platform from markup fingerprints and then tries an
// ordered cascade of strategies until one returns enough distinct names.
package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seo-content-go/pkg/logger"
)

const (
	// DefaultMaxProducts caps the names returned by one scrape.
	DefaultMaxProducts = 50
	// MinConfidence is the number of distinct names a strategy must produce before its
	// result is accepted.
	MinConfidence = 3
)

// ScrapeResult is the outcome of one scrape. Success implies a non-empty product list
// coming from a strategy that cleared the confidence threshold.
type ScrapeResult struct {
	Success      bool      `json:"success"`
	Products     []string  `json:"products"`
	Platform     Platform  `json:"platform_detected"`
	SelectorUsed string    `json:"selector_used,omitempty"`
	Error        string    `json:"error,omitempty"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	TotalFound   int       `json:"total_found"`
	URL          string    `json:"url"`
}

// Options tunes a Scraper. Zero values select the defaults; MinConfidence can only
// raise the threshold above MinConfidence.
type Options struct {
	MaxProducts   int
	MinConfidence int
}

// Scraper runs the strategy cascade. It holds no per-call state and is safe for
// concurrent use.
type Scraper struct {
	client        DownloadClient
	maxProducts   int
	minConfidence int
	log           *logger.Logger
	secureLog     *logger.SecurityLogger
}

// NewScraper creates a scraper fetching pages through client.
func NewScraper(client DownloadClient, opts Options) *Scraper {
	if opts.MaxProducts <= 0 {
		opts.MaxProducts = DefaultMaxProducts
	}
	if opts.MinConfidence < MinConfidence {
		opts.MinConfidence = MinConfidence
	}
	log := logger.GetLogger().Component("product_scraper")
	return &Scraper{
		client:        client,
		maxProducts:   opts.MaxProducts,
		minConfidence: opts.MinConfidence,
		log:           log,
		secureLog:     logger.NewSecurityLogger(log),
	}
}

// Scrape fetches pageURL once and runs the cascade over it. Transport failures are
// returned as an unsuccessful result, never as an error.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ScrapeResult {
	s.secureLog.DebugWithURL("Scraping category page", pageURL, nil)

	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		s.secureLog.ErrorWithURL("Failed to fetch category page", pageURL, err, map[string]interface{}{
			"kind": string(Classify(err)),
		})
		return failure(pageURL, PlatformGeneric, err)
	}
	return s.ScrapeHTML(body, pageURL)
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no download client configured", ErrConnection)
	}
	rc, err := s.client.Download(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read page: %v", ErrConnection, err)
	}
	return string(raw), nil
}

// ScrapeHTML runs platform detection and the cascade over markup already in hand.
func (s *Scraper) ScrapeHTML(markup, pageURL string) ScrapeResult {
	platform := DetectPlatform(markup)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return failure(pageURL, platform, err)
	}

	for _, strategy := range cascade(platform) {
		names := cleanNames(strategy.Match(doc))
		if len(names) < s.minConfidence {
			continue
		}

		total := len(names)
		if len(names) > s.maxProducts {
			names = names[:s.maxProducts]
		}
		s.secureLog.InfoWithURL("Product selector matched", pageURL, map[string]interface{}{
			"platform": string(platform),
			"selector": strategy.Name,
			"products": len(names),
		})
		return ScrapeResult{
			Success:      true,
			Products:     names,
			Platform:     platform,
			SelectorUsed: strategy.Name,
			TotalFound:   total,
			URL:          pageURL,
		}
	}

	s.secureLog.WarnWithURL("No product selector matched", pageURL, map[string]interface{}{
		"platform": string(platform),
	})
	return failure(pageURL, platform, ErrNoSelector)
}

func failure(pageURL string, platform Platform, err error) ScrapeResult {
	return ScrapeResult{
		Success:   false,
		Products:  []string{},
		Platform:  platform,
		Error:     describe(err),
		ErrorKind: Classify(err),
		URL:       pageURL,
	}
}

// FormatForPrompt renders product names as the numbered list handed to generation.
func FormatForPrompt(products []string) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### Products listed in the category:\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return b.String()
}
