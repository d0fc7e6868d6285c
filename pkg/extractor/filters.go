package extractor

import "strings"

// CleanFilter trims markup residue (bold markers, quotes, trailing dots) and drops
// entries left empty.
type CleanFilter struct{}

func NewCleanFilter() *CleanFilter {
	return &CleanFilter{}
}

func (f *CleanFilter) Apply(keywords []string) []string {
	filtered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.Trim(strings.TrimSpace(kw), "*_`\"'.")
		kw = strings.TrimSpace(kw)
		if kw != "" {
			filtered = append(filtered, kw)
		}
	}
	return filtered
}

func (f *CleanFilter) Name() string {
	return "clean"
}

// DuplicateFilter removes case-insensitive duplicates, keeping the first spelling.
type DuplicateFilter struct{}

func NewDuplicateFilter() *DuplicateFilter {
	return &DuplicateFilter{}
}

func (f *DuplicateFilter) Apply(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	filtered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		normalized := strings.ToLower(kw)
		if !seen[normalized] {
			seen[normalized] = true
			filtered = append(filtered, kw)
		}
	}
	return filtered
}

func (f *DuplicateFilter) Name() string {
	return "duplicate"
}
