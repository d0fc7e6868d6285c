package serp

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seo-content-go/pkg/logger"
)

const (
	// DefaultEndpoint is the script-free DuckDuckGo results page.
	DefaultEndpoint = "https://html.duckduckgo.com/html/"
	// DefaultRegion selects Italian results.
	DefaultRegion = "it-it"
	// DefaultResults is the number of results requested per keyword.
	DefaultResults = 10
)

// Searcher returns up to limit organic results for query, positions starting at 1.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SerpResult, error)
}

// Fetcher performs one GET and returns the UTF-8 body.
type Fetcher interface {
	Get(ctx context.Context, targetURL string) ([]byte, error)
}

// DuckDuckGo reads results from the DuckDuckGo HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	fetcher  Fetcher
	endpoint string
	region   string
	log      *logger.Logger
}

// NewDuckDuckGo creates a searcher. Empty endpoint or region select the defaults.
func NewDuckDuckGo(fetcher Fetcher, endpoint, region string) *DuckDuckGo {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if region == "" {
		region = DefaultRegion
	}
	return &DuckDuckGo{
		fetcher:  fetcher,
		endpoint: endpoint,
		region:   region,
		log:      logger.GetLogger().Component("serp"),
	}
}

// Search fetches the results page for query and parses it.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]SerpResult, error) {
	if limit <= 0 {
		limit = DefaultResults
	}

	body, err := d.fetcher.Get(ctx, d.searchURL(query))
	if err != nil {
		return nil, fmt.Errorf("search %q failed: %w", query, err)
	}

	results, err := parseResults(body, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results for %q: %w", query, err)
	}

	d.log.WithFields(map[string]interface{}{
		"query":   query,
		"results": len(results),
	}).Debug("SERP fetched")
	return results, nil
}

func (d *DuckDuckGo) searchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("kl", d.region)

	sep := "?"
	if strings.Contains(d.endpoint, "?") {
		sep = "&"
	}
	return d.endpoint + sep + params.Encode()
}

func parseResults(body []byte, limit int) ([]SerpResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	results := make([]SerpResult, 0, limit)
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		target := resolveHref(href)
		if target == "" {
			return true
		}
		results = append(results, SerpResult{
			Position:    len(results) + 1,
			Title:       collapse(link.Text()),
			URL:         target,
			Description: collapse(s.Find(".result__snippet").First().Text()),
		})
		return len(results) < limit
	})
	return results, nil
}

// resolveHref unwraps DuckDuckGo redirect links ("/l/?uddg=<target>").
func resolveHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	if parsed.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
