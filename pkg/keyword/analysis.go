package keyword

import (
	"fmt"
	"sort"
	"strings"
)

// clusterPreview is how many records of each bucket an Analysis keeps.
const clusterPreview = 5

// Analysis summarizes a parsed export for display before generation.
type Analysis struct {
	TotalKeywords int                      `json:"total_keywords"`
	MainKeyword   string                   `json:"main_keyword"`
	TotalVolume   int                      `json:"total_volume"`
	TopKeywords   []Scored                 `json:"top_keywords"`
	Clusters      map[ClusterName][]Record `json:"clusters"`
}

// Analyze computes the summary of records. The main keyword is the highest-volume
// record, the first one on ties. Each cluster is trimmed to its first five members.
func Analyze(records []Record, topN int) Analysis {
	a := Analysis{
		TotalKeywords: len(records),
		TopKeywords:   Score(TopN(records, topN)),
		Clusters:      make(map[ClusterName][]Record, len(ClusterOrder)),
	}

	best := -1
	for _, r := range records {
		a.TotalVolume += r.Volume
		if r.Volume > best {
			best = r.Volume
			a.MainKeyword = r.Keyword
		}
	}

	for name, members := range Cluster(records) {
		if len(members) > clusterPreview {
			members = members[:clusterPreview]
		}
		a.Clusters[name] = members
	}
	return a
}

// FormatTable renders records as a markdown table sorted by descending volume, the
// shape the generation prompt expects.
func FormatTable(records []Record) string {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume > sorted[j].Volume
	})

	var b strings.Builder
	b.WriteString("### KEYWORD DATA\n")
	b.WriteString("| Keyword | Volume | KD | Opportunity | IC |\n")
	b.WriteString("|---------|--------|----|-------------|----|")
	for _, r := range sorted {
		fmt.Fprintf(&b, "\n| %s | %d | %d | %d | %d |",
			r.Keyword, r.Volume, r.Difficulty, r.Opportunity, r.CommercialIntent)
	}
	return b.String()
}
