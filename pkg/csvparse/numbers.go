package csvparse

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt reads a locale formatted integer. Dots and commas are thousands separators,
// except that when both appear the last one starts a decimal tail, which is dropped:
// "1.234" and "1,234" give 1234, "1.234,56" gives 1234. Unparseable input gives 0.
func ParseInt(value string) int {
	clean := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if clean == "" {
		return 0
	}
	if strings.Contains(clean, ".") && strings.Contains(clean, ",") {
		clean = clean[:strings.LastIndexAny(clean, ".,")]
	}
	clean = strings.NewReplacer(".", "", ",", "").Replace(clean)

	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat reads a locale formatted decimal. A comma is a decimal separator; when dots
// and commas are mixed, the last separator is the decimal one and the others are
// thousands separators. "0,45" gives 0.45 and "1.234,56" gives 1234.56. Unparseable
// input gives 0.
func ParseFloat(value string) float64 {
	clean := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if clean == "" {
		return 0
	}

	hasDot := strings.Contains(clean, ".")
	hasComma := strings.Contains(clean, ",")
	switch {
	case hasDot && hasComma:
		idx := strings.LastIndexAny(clean, ".,")
		whole := strings.NewReplacer(".", "", ",", "").Replace(clean[:idx])
		clean = whole + "." + clean[idx+1:]
	case hasComma:
		if strings.Count(clean, ",") > 1 {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.Replace(clean, ",", ".", 1)
		}
	case strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
