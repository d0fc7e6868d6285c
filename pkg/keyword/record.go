// Package keyword holds the typed keyword-metric record parsed from exports, and the
// ranking and clustering applied to batches of them.
package keyword

// Record is one keyword row of a keyword-metric export. Records are built once by the
// CSV parser and never modified afterwards; callers that need a different ordering copy
// the slice.
type Record struct {
	Keyword          string  `json:"keyword"`
	Volume           int     `json:"volume"`
	CPC              float64 `json:"cpc"`
	Difficulty       int     `json:"difficulty"`
	Opportunity      int     `json:"opportunity"`
	SearchAppearance int     `json:"search_appearance"`
	CommercialIntent int     `json:"commercial_intent"`
}

// Scored pairs a record with its priority score for callers that serialize rankings.
type Scored struct {
	Record
	Priority float64 `json:"priority_score"`
}

// Keywords returns the search terms of records, in order.
func Keywords(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Keyword)
	}
	return out
}
