package search

import (
	"context"

	"github.com/specdex/specdex/internal/domain/catalog"
)

// Repository defines the catalog access the search service needs.
type Repository interface {
	ListAll(ctx context.Context) ([]catalog.Record, error)
}
