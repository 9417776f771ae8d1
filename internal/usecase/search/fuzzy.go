package search

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultFuzzyThreshold is the minimum similarity a text query needs to
// accept a record.
const DefaultFuzzyThreshold = 0.6

// fuzzyScore rates query against text in [0,1]. Matching is
// case-insensitive. A substring hit scores 1 regardless of edit distance;
// otherwise the score is the normalized Levenshtein similarity
// 1 - distance/max(len). Empty query or text scores 0.
func fuzzyScore(query, text string) float64 {
	if query == "" || text == "" {
		return 0
	}
	q := strings.ToLower(query)
	t := strings.ToLower(text)
	if strings.Contains(t, q) {
		return 1
	}
	longest := utf8.RuneCountInString(q)
	if n := utf8.RuneCountInString(t); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	distance := fuzzy.LevenshteinDistance(q, t)
	return 1 - float64(distance)/float64(longest)
}
