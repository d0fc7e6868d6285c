// Package extractor recovers page fields (meta tags, headings, FAQ, keyword list) from
// generated Markdown. Missing patterns leave fields empty; nothing here returns an error.
package extractor

import (
	"regexp"
	"strings"

	"seo-content-go/pkg/logger"
)

// DefaultFallbackKeywords is how many caller keywords stand in for a missing list.
const DefaultFallbackKeywords = 10

var (
	metaTitlePattern       = regexp.MustCompile(`(?i)\bmeta\s+title\s*(?:\*\*)?\s*:\s*(?:\*\*)?(.*)$`)
	metaDescriptionPattern = regexp.MustCompile(`(?i)\bmeta\s+description\s*(?:\*\*)?\s*:\s*(?:\*\*)?(.*)$`)
	seoKeywordsPattern     = regexp.MustCompile(`(?i)\bseo\s+keywords\s*(?:\*\*)?\s*:\s*(?:\*\*)?(.*)$`)
	sectionPattern         = regexp.MustCompile(`(?m)^##[ \t]+(.+)$`)
)

// Extractor parses generated text into ExtractedContent.
type Extractor struct {
	filters       []Filter
	fallbackCount int
	log           *logger.Logger
}

// NewExtractor returns an extractor with the default keyword filters and fallback size.
func NewExtractor() *Extractor {
	return &Extractor{
		filters:       []Filter{NewCleanFilter(), NewDuplicateFilter()},
		fallbackCount: DefaultFallbackKeywords,
		log:           logger.GetLogger().Component("extractor"),
	}
}

// SetFilters replaces the keyword list filters.
func (e *Extractor) SetFilters(filters []Filter) {
	e.filters = filters
}

// SetFallbackCount changes how many fallback keywords are used; values below 1 are ignored.
func (e *Extractor) SetFallbackCount(n int) {
	if n > 0 {
		e.fallbackCount = n
	}
}

// Extract parses raw. When no keyword list is found, the first fallback keywords
// supplied by the caller are used instead.
func (e *Extractor) Extract(raw string, fallbackKeywords []string) ExtractedContent {
	out := ExtractedContent{
		Content:  raw,
		Sections: []Section{},
		FAQ:      []FAQItem{},
		Keywords: []string{},
	}
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	e.scanLines(text, &out)
	out.Sections = extractSections(text)
	out.FAQ = extractFAQ(text)

	if len(out.Keywords) == 0 {
		n := min(e.fallbackCount, len(fallbackKeywords))
		out.Keywords = append(out.Keywords, fallbackKeywords[:n]...)
	}

	e.log.WithFields(map[string]interface{}{
		"has_meta_title":       out.MetaTitle != "",
		"has_meta_description": out.MetaDescription != "",
		"has_heading":          out.Heading != "",
		"sections":             len(out.Sections),
		"faq":                  len(out.FAQ),
		"keywords":             len(out.Keywords),
	}).Debug("Extracted structured content")

	return out
}

// scanLines runs the single forward pass over lines. Each line is matched against the
// markers in priority order and only its first match is used; for every field the
// first non-empty value found is kept.
func (e *Extractor) scanLines(text string, out *ExtractedContent) {
	for _, line := range strings.Split(text, "\n") {
		if m := metaTitlePattern.FindStringSubmatch(line); m != nil {
			if out.MetaTitle == "" {
				out.MetaTitle = cleanValue(m[1])
			}
			continue
		}
		if m := metaDescriptionPattern.FindStringSubmatch(line); m != nil {
			if out.MetaDescription == "" {
				out.MetaDescription = cleanValue(m[1])
			}
			continue
		}
		if heading, ok := levelOneHeading(line); ok && out.Heading == "" {
			out.Heading = heading
			continue
		}
		if m := seoKeywordsPattern.FindStringSubmatch(line); m != nil && len(out.Keywords) == 0 {
			keywords := strings.Split(cleanValue(m[1]), ",")
			for _, f := range e.filters {
				keywords = f.Apply(keywords)
			}
			out.Keywords = keywords
		}
	}
}

func levelOneHeading(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "# ") {
		return "", false
	}
	heading := strings.TrimSpace(trimmed[2:])
	return heading, heading != ""
}

// extractSections collects every "## " heading except the FAQ ones.
func extractSections(text string) []Section {
	sections := []Section{}
	for _, m := range sectionPattern.FindAllStringSubmatch(text, -1) {
		heading := strings.TrimSpace(m[1])
		if heading == "" || faqMarkerPattern.MatchString(heading) {
			continue
		}
		sections = append(sections, Section{Heading: heading})
	}
	return sections
}

// cleanValue strips surrounding whitespace and leftover bold markers.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "**")
	v = strings.TrimSuffix(v, "**")
	return strings.TrimSpace(v)
}

// Extract parses raw with a default extractor.
func Extract(raw string, fallbackKeywords []string) ExtractedContent {
	return NewExtractor().Extract(raw, fallbackKeywords)
}
