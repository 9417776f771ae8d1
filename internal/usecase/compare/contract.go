package compare

import (
	"context"

	"github.com/specdex/specdex/internal/domain/catalog"
)

// CatalogReader resolves record IDs for session restoration.
type CatalogReader interface {
	Get(ctx context.Context, id string) (catalog.Record, error)
}

// SessionStore persists the ordered ID list of one comparison session.
// Load returns domain.ErrSessionNotFound for an unknown session.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) ([]string, error)
	Save(ctx context.Context, sessionID string, ids []string) error
	Delete(ctx context.Context, sessionID string) error
}
