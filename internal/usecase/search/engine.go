// Package search implements the specification search engine: normalization
// of raw catalog records into a searchable index, fuzzy text matching,
// numeric range scoring, and ranked, highlighted search results.
package search

import (
	"sort"

	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/search/filter"
	"github.com/specdex/specdex/internal/domain/search/result"
	"github.com/specdex/specdex/internal/domain/spec"
)

// browseRelevance is the fixed score assigned when no criteria are active.
const browseRelevance = 0.5

// Engine evaluates the current filter set against a normalized index and
// produces ranked results. Filter setters return the engine for chaining.
//
// An Engine is owned by exactly one caller: every operation runs
// synchronously to completion and there is no internal locking. Callers
// that share an engine across goroutines must serialize all calls,
// including Initialize, themselves.
type Engine struct {
	threshold float64
	logger    *zap.Logger
	index     []NormalizedRecord
	filters   *filter.Filters
}

// NewEngine creates an engine with an empty index and no active filters.
// A nil logger is replaced with a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		threshold: DefaultFuzzyThreshold,
		logger:    logger,
		filters:   filter.New(),
	}
}

// WithThreshold overrides the fuzzy acceptance threshold. Values outside
// (0,1] keep the default.
func (e *Engine) WithThreshold(t float64) *Engine {
	if t > 0 && t <= 1 {
		e.threshold = t
	}
	return e
}

// Initialize normalizes the given records and replaces the engine's index.
// The previous index is superseded, never mutated. Active filters are kept.
func (e *Engine) Initialize(records []catalog.Record) *Engine {
	e.index = normalizeRecords(records)
	return e
}

// withIndex installs an already-normalized index snapshot. Used by Service
// to share one normalization across per-request engines.
func (e *Engine) withIndex(index []NormalizedRecord) *Engine {
	e.index = index
	return e
}

// SetTextSearch sets the fuzzy text query; empty disables text filtering.
func (e *Engine) SetTextSearch(query string) *Engine {
	e.filters.SetText(query)
	return e
}

// AddRangeFilter adds a numeric constraint on a full "category.spec" key.
// Invalid bounds (min > max, NaN, Inf) are silently rejected and leave the
// filter set unchanged.
func (e *Engine) AddRangeFilter(key string, min, max float64) *Engine {
	e.filters.AddRange(key, min, max)
	return e
}

// RemoveRangeFilter drops the constraint for the key, if any.
func (e *Engine) RemoveRangeFilter(key string) *Engine {
	e.filters.RemoveRange(key)
	return e
}

// AddCategoryFilter requires results to carry the category.
func (e *Engine) AddCategoryFilter(category string) *Engine {
	e.filters.AddCategory(category)
	return e
}

// RemoveCategoryFilter drops a category requirement, if any.
func (e *Engine) RemoveCategoryFilter(category string) *Engine {
	e.filters.RemoveCategory(category)
	return e
}

// ClearFilters replaces the whole filter set with a fresh empty one.
func (e *Engine) ClearFilters() *Engine {
	e.filters = filter.New()
	return e
}

// Filters exposes the current filter state (read-only use expected).
func (e *Engine) Filters() *filter.Filters { return e.filters }

// Search scores every indexed record against the active filters under AND
// semantics and returns results sorted by descending relevance. Ties keep
// the normalized index order (stable sort). With no active filters, every
// record is returned with the fixed browse relevance and no matched keys.
func (e *Engine) Search() []result.Result {
	results := make([]result.Result, 0, len(e.index))
	for _, rec := range e.index {
		if res, ok := e.score(rec); ok {
			results = append(results, res)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results
}

// score evaluates one record. Any failing criterion eliminates it.
func (e *Engine) score(rec NormalizedRecord) (result.Result, bool) {
	if e.filters.Empty() {
		return result.New(rec.Record, browseRelevance, nil, nil), true
	}

	var total float64
	var criteria int
	var matchedKeys []string
	var highlights map[string]string

	if query := e.filters.Text(); query != "" {
		blobScore := fuzzyScore(query, rec.SearchableText)
		if blobScore < e.threshold {
			return result.Result{}, false
		}
		total += blobScore
		criteria++
		matchedKeys = append(matchedKeys, e.matchedSpecKeys(rec, query)...)
		highlights = highlightRecord(rec, query, e.logger)
	}

	for _, key := range e.filters.RangeKeys() {
		r, _ := e.filters.Range(key)
		n, ok := rec.Numerics[key]
		if !ok {
			return result.Result{}, false
		}
		if !rangesOverlap(n, r) {
			return result.Result{}, false
		}
		total += overlapScore(n, r)
		criteria++
		matchedKeys = append(matchedKeys, key)
	}

	for _, category := range e.filters.Categories() {
		if _, ok := rec.Record.Specifications()[category]; !ok {
			return result.Result{}, false
		}
		// Presence is the whole contribution for a category criterion.
		total++
		criteria++
		matchedKeys = append(matchedKeys, category)
	}

	return result.New(rec.Record, total/float64(criteria), matchedKeys, highlights), true
}

// matchedSpecKeys collects the full keys whose fields (display name or spec
// key, value, description) fuzzily match the query at or above the
// threshold, in deterministic key order.
func (e *Engine) matchedSpecKeys(rec NormalizedRecord, query string) []string {
	specs := rec.Record.Specifications()
	var keys []string
	for _, category := range specs.SortedKeys() {
		for _, specKey := range specs.SortedSpecKeys(category) {
			v := specs[category][specKey]
			if fuzzyScore(query, v.Label(specKey)) >= e.threshold ||
				fuzzyScore(query, v.Value) >= e.threshold ||
				fuzzyScore(query, v.Description) >= e.threshold {
				keys = append(keys, spec.FullKey(category, specKey))
			}
		}
	}
	return keys
}
