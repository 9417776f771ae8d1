// Package compare persists comparison session ID lists in Redis with a TTL.
package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/specdex/specdex/internal/db"
	"github.com/specdex/specdex/internal/domain"
)

// DefaultSessionTTL is how long an untouched comparison session survives.
const DefaultSessionTTL = 24 * time.Hour

// store is the consumer interface for sessions (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store implements the comparison session persistence contract. Sessions
// are stored as JSON ID arrays under "<prefix>compare:<session>"; every
// Save refreshes the TTL.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a comparison session store.
func New(s store, prefix string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + "compare:" + sessionID
}

// Load returns the session's record IDs in stored order.
func (s *Store) Load(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.store.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return ids, nil
}

// Save stores the session's record IDs and refreshes its TTL. Saving an
// empty list removes the session entirely.
func (s *Store) Save(ctx context.Context, sessionID string, ids []string) error {
	if len(ids) == 0 {
		return s.Delete(ctx, sessionID)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	if err := s.store.SetWithTTL(ctx, s.key(sessionID), data, s.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
