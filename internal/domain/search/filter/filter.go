// Package filter holds the mutable filter state of one search engine
// instance: a text query, numeric range constraints keyed by full
// "category.spec" keys, and required categories. All criteria combine with
// AND semantics at search time.
package filter

import (
	"math"
	"sort"
)

// Range is an inclusive numeric filter interval.
type Range struct {
	Min float64
	Max float64
}

// Filters is engine-owned state, created empty and mutated only through the
// setter methods. It is not safe for concurrent use; the owning engine
// serializes access.
type Filters struct {
	text       string
	ranges     map[string]Range
	categories map[string]struct{}
}

// New creates an empty filter set.
func New() *Filters {
	return &Filters{
		ranges:     make(map[string]Range),
		categories: make(map[string]struct{}),
	}
}

// SetText sets the fuzzy text query. An empty string disables text filtering.
func (f *Filters) SetText(query string) {
	f.text = query
}

// AddRange adds a numeric range constraint for the given full key. Invalid
// input — min > max, or a non-finite bound (the NaN/Inf analogue of a null
// bound) — is a defined rejection: the call returns false and the filter
// map is left untouched. No error is raised.
func (f *Filters) AddRange(key string, min, max float64) bool {
	if key == "" {
		return false
	}
	if !isFinite(min) || !isFinite(max) {
		return false
	}
	if min > max {
		return false
	}
	f.ranges[key] = Range{Min: min, Max: max}
	return true
}

// RemoveRange drops the range constraint for the key, reporting whether one
// was present.
func (f *Filters) RemoveRange(key string) bool {
	if _, ok := f.ranges[key]; !ok {
		return false
	}
	delete(f.ranges, key)
	return true
}

// AddCategory requires records to carry the given category.
func (f *Filters) AddCategory(category string) {
	if category == "" {
		return
	}
	f.categories[category] = struct{}{}
}

// RemoveCategory drops a category requirement, reporting whether it was set.
func (f *Filters) RemoveCategory(category string) bool {
	if _, ok := f.categories[category]; !ok {
		return false
	}
	delete(f.categories, category)
	return true
}

// Text returns the active text query ("" when inactive).
func (f *Filters) Text() string { return f.text }

// Range returns the constraint for a key.
func (f *Filters) Range(key string) (Range, bool) {
	r, ok := f.ranges[key]
	return r, ok
}

// RangeKeys returns the active range-filter keys in lexicographic order.
func (f *Filters) RangeKeys() []string {
	keys := make([]string, 0, len(f.ranges))
	for k := range f.ranges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Categories returns the active category filters in lexicographic order.
func (f *Filters) Categories() []string {
	cats := make([]string, 0, len(f.categories))
	for c := range f.categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// HasCategory reports whether a category filter is active.
func (f *Filters) HasCategory(category string) bool {
	_, ok := f.categories[category]
	return ok
}

// Empty reports whether no criteria are active (the "browse everything"
// state).
func (f *Filters) Empty() bool {
	return f.text == "" && len(f.ranges) == 0 && len(f.categories) == 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
