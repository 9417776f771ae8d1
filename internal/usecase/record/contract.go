package record

import (
	"context"

	"github.com/specdex/specdex/internal/domain/catalog"
)

// Repository defines the storage contract for catalog records.
type Repository interface {
	Upsert(ctx context.Context, rec catalog.Record) (created bool, err error)
	Get(ctx context.Context, id string) (catalog.Record, error)
	List(ctx context.Context, cursor string, limit int) (recs []catalog.Record, nextCursor string, err error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// IndexInvalidator is notified after catalog mutations so the search index
// is rebuilt before the next query.
type IndexInvalidator interface {
	Invalidate()
}
