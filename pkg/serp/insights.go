package serp

import (
	"context"
	"fmt"
	"strings"
)

// Insights bundles the results for one keyword with their title analysis.
type Insights struct {
	Keyword      string        `json:"keyword"`
	Results      []PromptItem  `json:"results"`
	Analysis     TitleAnalysis `json:"analysis"`
	TotalResults int           `json:"total_results"`
}

// CompetitorInsights searches keyword and summarizes what ranks for it.
func CompetitorInsights(ctx context.Context, searcher Searcher, keyword string, limit int) (*Insights, error) {
	results, err := searcher.Search(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	return &Insights{
		Keyword:      keyword,
		Results:      FormatForPrompt(results),
		Analysis:     AnalyzeTitles(results),
		TotalResults: len(results),
	}, nil
}

// Markdown renders the insights as a short report.
func (i *Insights) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### SERP: %s (%d results)\n", i.Keyword, i.TotalResults)
	for _, item := range i.Results {
		fmt.Fprintf(&b, "%d. **%s**\n   URL: %s\n", item.Position, item.Title, item.URL)
		if item.Description != "" {
			fmt.Fprintf(&b, "   %s\n", item.Description)
		}
	}
	if i.Analysis.TitlesAnalyzed > 0 {
		fmt.Fprintf(&b, "\nAverage title length: %d\n", i.Analysis.AvgLength)
		for _, p := range i.Analysis.Patterns {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		if len(i.Analysis.CommonWords) > 0 {
			fmt.Fprintf(&b, "Common words: %s\n", strings.Join(i.Analysis.CommonWords, ", "))
		}
	}
	return b.String()
}
