package search

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain/spec"
)

// Highlight markers wrapped around matched spans in result values.
const (
	markerOpen  = "<mark>"
	markerClose = "</mark>"
)

// highlightPattern compiles a case-insensitive literal pattern for the
// query. Regex-special characters are escaped first; a compile failure is
// reported to the caller, which skips highlighting rather than failing the
// search.
func highlightPattern(query string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + regexp.QuoteMeta(query))
}

// highlightRecord produces highlighted display values for every
// specification field that contains the query as a case-insensitive
// substring. This check is independent of the fuzzy threshold: a record
// accepted on blob similarity only highlights fields with literal hits.
func highlightRecord(rec NormalizedRecord, query string, logger *zap.Logger) map[string]string {
	if query == "" {
		return nil
	}
	pattern, err := highlightPattern(query)
	if err != nil {
		logger.Warn("highlight pattern construction failed, skipping highlighting",
			zap.String("query", query), zap.Error(err))
		return nil
	}

	lowered := strings.ToLower(query)
	specs := rec.Record.Specifications()
	var out map[string]string
	for _, category := range specs.SortedKeys() {
		for _, specKey := range specs.SortedSpecKeys(category) {
			v := specs[category][specKey]
			display := v.DisplayValue()
			if !containsFold(display, lowered) &&
				!containsFold(v.Label(specKey), lowered) &&
				!containsFold(v.Description, lowered) {
				continue
			}
			if out == nil {
				out = make(map[string]string)
			}
			out[spec.FullKey(category, specKey)] = wrapMatches(pattern, display)
		}
	}
	return out
}

// wrapMatches wraps every match of the pattern in highlight markers. The
// plain value is returned untouched when nothing matches.
func wrapMatches(pattern *regexp.Regexp, value string) string {
	if value == "" {
		return value
	}
	return pattern.ReplaceAllStringFunc(value, func(m string) string {
		return markerOpen + m + markerClose
	})
}

// containsFold reports a case-insensitive substring hit; needle must
// already be lowercased.
func containsFold(haystack, needle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
