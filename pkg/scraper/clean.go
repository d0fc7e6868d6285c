package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minNameLength is the shortest accepted product name; shorter texts are labels.
const minNameLength = 4

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	trailingPrice  = regexp.MustCompile(`\s*[€$£]\s*[\d.,]+\s*$`)
	trailingAmount = regexp.MustCompile(`\s*[\d.,]*\d\s*[€$£]\s*$`)
)

// CleanName normalizes an element text into a product name: whitespace runs become one
// space and a trailing price such as "€ 29,90" or "29,90 €" is removed.
func CleanName(raw string) string {
	name := whitespaceRun.ReplaceAllString(raw, " ")
	name = trailingPrice.ReplaceAllString(name, "")
	name = trailingAmount.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// cleanNames cleans texts, drops noise and duplicates, and keeps first-seen order.
func cleanNames(texts []string) []string {
	seen := make(map[string]bool, len(texts))
	names := make([]string, 0, len(texts))
	for _, raw := range texts {
		name := CleanName(raw)
		if utf8.RuneCountInString(name) < minNameLength || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
