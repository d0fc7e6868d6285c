package extractor

import (
	"regexp"
	"strings"
)

var (
	faqMarkerPattern = regexp.MustCompile(`(?i)domande\s+frequenti|frequently\s+asked\s+questions|\bfaqs?\b`)
	boldPattern      = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
)

const horizontalRule = "\n---"

// faqSegment returns the text following the canonical FAQ marker, or "" when there is
// none. The canonical marker is the first one sitting on a heading line, even when a
// prose mention comes earlier: prose markers are never preferred over a heading one,
// so a mention in body text or in the trailing keyword list cannot hide the real FAQ
// block. Only with no heading marker is the first occurrence anywhere used.
func faqSegment(text string) string {
	matches := faqMarkerPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return ""
	}

	for _, loc := range matches {
		lineStart := strings.LastIndexByte(text[:loc[0]], '\n') + 1
		if strings.HasPrefix(strings.TrimLeft(text[lineStart:loc[0]], " \t"), "#") {
			lineEnd := strings.IndexByte(text[loc[1]:], '\n')
			if lineEnd < 0 {
				return ""
			}
			return text[loc[1]+lineEnd:]
		}
	}
	return text[matches[0][1]:]
}

// extractFAQ reads bold question / answer pairs from the FAQ segment. A bold span is a
// question only when a line break follows it; its answer runs to the next bold marker,
// a horizontal rule or the end of the segment.
func extractFAQ(text string) []FAQItem {
	items := []FAQItem{}
	segment := faqSegment(text)

	pos := 0
	for pos < len(segment) {
		loc := boldPattern.FindStringSubmatchIndex(segment[pos:])
		if loc == nil {
			break
		}
		question := strings.TrimSpace(segment[pos+loc[2] : pos+loc[3]])
		after := pos + loc[1]

		if !strings.HasPrefix(strings.TrimLeft(segment[after:], " \t"), "\n") {
			pos = after
			continue
		}

		end := len(segment)
		if i := strings.Index(segment[after:], "**"); i >= 0 {
			end = after + i
		}
		if i := strings.Index(segment[after:], horizontalRule); i >= 0 && after+i < end {
			end = after + i
		}

		answer := strings.TrimSpace(segment[after:end])
		if question != "" && answer != "" {
			items = append(items, FAQItem{Question: question, Answer: answer})
		}
		pos = end
	}
	return items
}
