package serp

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// TopWordsLimit is the number of frequent title words reported.
const TopWordsLimit = 10

// Separators checked in titles, in reporting order.
var Separators = []string{" - ", " | ", " – ", ": "}

var (
	yearPattern = regexp.MustCompile(`\b20\d{2}\b`)
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

var stopWords = map[string]bool{
	"il": true, "la": true, "i": true, "le": true, "di": true, "da": true, "in": true,
	"su": true, "per": true, "con": true, "e": true, "a": true, "the": true, "and": true,
	"or": true, "for": true, "del": true, "della": true, "dei": true, "delle": true,
	"degli": true, "nel": true, "nella": true, "una": true, "uno": true, "gli": true,
	"with": true, "your": true, "you": true, "are": true,
}

// TitleAnalysis is a descriptive summary of a set of result titles.
type TitleAnalysis struct {
	Patterns       []string `json:"patterns"`
	Separators     []string `json:"separators"`
	IncludesYear   bool     `json:"includes_year"`
	CommonWords    []string `json:"common_words"`
	AvgLength      int      `json:"avg_length"`
	TitlesAnalyzed int      `json:"titles_analyzed"`
}

// AnalyzeTitles reports the average title length in characters, separators used by at
// least half the titles, whether years are common and the most frequent words.
func AnalyzeTitles(results []SerpResult) TitleAnalysis {
	analysis := TitleAnalysis{
		Patterns:    []string{},
		Separators:  []string{},
		CommonWords: []string{},
	}
	if len(results) == 0 {
		return analysis
	}

	n := len(results)
	totalLength := 0
	yearCount := 0
	for _, r := range results {
		totalLength += utf8.RuneCountInString(r.Title)
		if yearPattern.MatchString(r.Title) {
			yearCount++
		}
	}
	analysis.TitlesAnalyzed = n
	analysis.AvgLength = int(math.Round(float64(totalLength) / float64(n)))

	for _, sep := range Separators {
		count := 0
		for _, r := range results {
			if strings.Contains(r.Title, sep) {
				count++
			}
		}
		if count > 0 && count*2 >= n {
			analysis.Separators = append(analysis.Separators, sep)
			analysis.Patterns = append(analysis.Patterns, fmt.Sprintf("Use '%s' as separator", sep))
		}
	}

	if yearsAreCommon(yearCount, n) {
		analysis.IncludesYear = true
		analysis.Patterns = append(analysis.Patterns, "Include the year in the title")
	}

	analysis.CommonWords = commonWords(results, TopWordsLimit)
	return analysis
}

// yearsAreCommon needs three titles with a year, or half of them when fewer than three
// titles were analyzed.
func yearsAreCommon(withYear, total int) bool {
	if withYear == 0 {
		return false
	}
	if total < 3 {
		return withYear*2 >= total
	}
	return withYear >= 3
}

// commonWords counts lowercased words longer than two characters that are not stop
// words. Ties keep first appearance order.
func commonWords(results []SerpResult, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range results {
		for _, w := range wordPattern.FindAllString(strings.ToLower(r.Title), -1) {
			if utf8.RuneCountInString(w) <= 2 || stopWords[w] {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}
