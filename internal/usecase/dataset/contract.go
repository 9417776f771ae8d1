package dataset

import (
	"context"

	"github.com/specdex/specdex/internal/domain/catalog"
)

// Repository defines the catalog access dataset import/export needs.
type Repository interface {
	Upsert(ctx context.Context, rec catalog.Record) (created bool, err error)
	ListAll(ctx context.Context) ([]catalog.Record, error)
}

// IndexInvalidator marks the search index stale after a bulk import.
type IndexInvalidator interface {
	Invalidate()
}
