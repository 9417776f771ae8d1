package specdex

import (
	"context"
	"fmt"

	"github.com/specdex/specdex/internal/domain/search/filter"
	searchuc "github.com/specdex/specdex/internal/usecase/search"
)

// SearchBuilder is a fluent builder for catalog search queries. All
// criteria combine with AND semantics.
type SearchBuilder struct {
	svc *searchuc.Service

	text       string
	ranges     map[string]filter.Range
	categories []string
	limit      int
}

// Text sets the fuzzy text query matched against titles and specification
// values.
func (b *SearchBuilder) Text(q string) *SearchBuilder {
	b.text = q
	return b
}

// Range adds an inclusive numeric range constraint on a full
// "category.spec" key.
func (b *SearchBuilder) Range(key string, min, max float64) *SearchBuilder {
	if b.ranges == nil {
		b.ranges = make(map[string]filter.Range)
	}
	b.ranges[key] = filter.Range{Min: min, Max: max}
	return b
}

// Categories requires records to carry all the given categories.
func (b *SearchBuilder) Categories(names ...string) *SearchBuilder {
	b.categories = append(b.categories, names...)
	return b
}

// Limit caps the number of results. Zero means no cap.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do executes the search. No criteria is the browse state and returns every
// record.
func (b *SearchBuilder) Do(ctx context.Context) ([]SearchResult, error) {
	results, err := b.svc.Search(ctx, searchuc.Params{
		Text:       b.text,
		Ranges:     b.ranges,
		Categories: b.categories,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if b.limit > 0 && len(results) > b.limit {
		results = results[:b.limit]
	}
	return fromSearchResults(results), nil
}
