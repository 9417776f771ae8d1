package specdex

import (
	"context"
	"fmt"
)

// Catalog is a generic, schema-first view of the record catalog. Schema is
// inferred from T's struct tags at construction time.
type Catalog[T any] struct {
	client *Client
	meta   *schemaMeta
}

// NewCatalog creates a typed catalog handle. T must be a struct with
// specdex tags. Schema is parsed once and cached.
func NewCatalog[T any](client *Client) (*Catalog[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}
	return &Catalog[T]{client: client, meta: meta}, nil
}

// Upsert creates or updates a single item. Returns true if created.
func (c *Catalog[T]) Upsert(ctx context.Context, item T) (bool, error) {
	_, created, err := c.client.Records().Upsert(ctx, c.meta.toRecord(item))
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Get retrieves a typed item by ID.
func (c *Catalog[T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := c.client.Records().Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	item, ok := c.meta.fromRecord(rec).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("get: type assertion failed")
	}
	return item, nil
}

// Delete removes an item by ID.
func (c *Catalog[T]) Delete(ctx context.Context, id string) error {
	return c.client.Records().Delete(ctx, id)
}

// Count returns the number of catalog records.
func (c *Catalog[T]) Count(ctx context.Context) (int, error) {
	return c.client.Records().Count(ctx)
}

// Search returns a typed fluent search builder.
func (c *Catalog[T]) Search() *TypedSearchBuilder[T] {
	return &TypedSearchBuilder[T]{inner: c.client.Search(), meta: c.meta}
}

// Hit is a typed search result.
type Hit[T any] struct {
	Item        T
	Score       float64
	MatchedKeys []string
}

// TypedSearchBuilder wraps SearchBuilder and converts results to T.
type TypedSearchBuilder[T any] struct {
	inner *SearchBuilder
	meta  *schemaMeta
}

// Text sets the fuzzy text query.
func (b *TypedSearchBuilder[T]) Text(q string) *TypedSearchBuilder[T] {
	b.inner.Text(q)
	return b
}

// Range adds an inclusive numeric range constraint on a full
// "category.spec" key.
func (b *TypedSearchBuilder[T]) Range(key string, min, max float64) *TypedSearchBuilder[T] {
	b.inner.Range(key, min, max)
	return b
}

// Categories requires records to carry all the given categories.
func (b *TypedSearchBuilder[T]) Categories(names ...string) *TypedSearchBuilder[T] {
	b.inner.Categories(names...)
	return b
}

// Limit caps the number of results.
func (b *TypedSearchBuilder[T]) Limit(n int) *TypedSearchBuilder[T] {
	b.inner.Limit(n)
	return b
}

// Do executes the search and returns typed hits.
func (b *TypedSearchBuilder[T]) Do(ctx context.Context) ([]Hit[T], error) {
	results, err := b.inner.Do(ctx)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit[T], 0, len(results))
	for _, r := range results {
		item, ok := b.meta.fromRecord(r.Record).(T)
		if !ok {
			continue
		}
		hits = append(hits, Hit[T]{
			Item:        item,
			Score:       r.Score,
			MatchedKeys: r.MatchedKeys,
		})
	}
	return hits, nil
}
