// Package result holds the ranked search hit returned by the engine.
package result

import "github.com/specdex/specdex/internal/domain/catalog"

// Result is a single search hit: the matched record, its relevance score,
// the full keys that satisfied active criteria, and per-key highlighted
// values for the active text query.
type Result struct {
	record      catalog.Record
	score       float64
	matchedKeys []string
	highlights  map[string]string
}

// New creates a search result.
func New(
	record catalog.Record, score float64,
	matchedKeys []string, highlights map[string]string,
) Result {
	return Result{
		record:      record,
		score:       score,
		matchedKeys: matchedKeys,
		highlights:  highlights,
	}
}

// Record returns the matched catalog record.
func (r Result) Record() catalog.Record { return r.record }

// Score returns the relevance score in [0,1].
func (r Result) Score() float64 { return r.score }

// MatchedKeys returns the full "category.spec" keys (and category names)
// that satisfied active criteria. Empty in the browse-everything state.
func (r Result) MatchedKeys() []string { return r.matchedKeys }

// Highlights maps full keys to their display value with the active text
// query wrapped in highlight markers. Nil when no text query is active.
func (r Result) Highlights() map[string]string { return r.highlights }
