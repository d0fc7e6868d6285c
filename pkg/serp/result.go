// Package serp collects search engine result pages for a keyword, merges batches from
// several queries and summarizes how competing titles are written.
package serp

import "seo-content-go/pkg/utils"

// SerpResult is one organic search result. Two results with the same trimmed URL are the
// same entity.
type SerpResult struct {
	Position    int    `json:"position"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Aggregate flattens batches in order, keeps the first result seen for each URL and
// truncates to limit. A non-positive limit yields an empty slice.
func Aggregate(batches [][]SerpResult, limit int) []SerpResult {
	out := make([]SerpResult, 0)
	if limit <= 0 {
		return out
	}

	seen := make(map[string]bool)
	for _, batch := range batches {
		for _, r := range batch {
			key := utils.URLKey(r.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, r)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
