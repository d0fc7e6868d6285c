package serp

import "unicode/utf8"

// DescriptionLimit is the number of description characters kept for prompts.
const DescriptionLimit = 150

// PromptItem is a SerpResult trimmed for inclusion in a generation brief.
type PromptItem struct {
	Position    int    `json:"position"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// FormatForPrompt converts results to prompt items, cutting long descriptions to
// DescriptionLimit characters followed by "...".
func FormatForPrompt(results []SerpResult) []PromptItem {
	items := make([]PromptItem, 0, len(results))
	for _, r := range results {
		items = append(items, PromptItem{
			Position:    r.Position,
			Title:       r.Title,
			URL:         r.URL,
			Description: Truncate(r.Description, DescriptionLimit),
		})
	}
	return items
}

// Truncate cuts s to limit characters and appends "..." when anything was removed.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
