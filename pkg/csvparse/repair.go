package csvparse

import "strings"

// repairLines rebuilds logical records from physical lines. Some exporters write quoted
// header cells with literal newlines inside them; while the running count of double
// quotes is odd the record is still open, so the next physical line is appended with a
// single space in place of the newline.
func repairLines(text string) []string {
	physical := strings.Split(text, "\n")
	logical := make([]string, 0, len(physical))

	var current strings.Builder
	quotes := 0
	open := false
	for _, line := range physical {
		line = strings.TrimSuffix(line, "\r")
		if open {
			current.WriteByte(' ')
		}
		current.WriteString(line)
		quotes += strings.Count(line, `"`)

		if quotes%2 == 0 {
			logical = append(logical, current.String())
			current.Reset()
			quotes = 0
			open = false
			continue
		}
		open = true
	}
	if current.Len() > 0 {
		logical = append(logical, current.String())
	}
	return logical
}

// sniffDelimiter picks the field separator from the header line. Semicolon wins over
// comma because locale exports use commas as decimal separators.
func sniffDelimiter(header string) rune {
	switch {
	case strings.ContainsRune(header, ';'):
		return ';'
	case strings.ContainsRune(header, '\t'):
		return '\t'
	default:
		return ','
	}
}

// normalizeHeader recovers the semantic column name from an exported header cell,
// e.g. `_t("CPC Medio")` becomes `cpc medio`.
func normalizeHeader(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, `_t("`, "")
	key = strings.ReplaceAll(key, `")`, "")
	key = strings.ReplaceAll(key, `"`, "")
	return strings.Join(strings.Fields(key), " ")
}
