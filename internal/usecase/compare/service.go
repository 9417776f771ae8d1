// Package compare orchestrates session-scoped comparison sets: loading a
// session's held records, applying the bounded add/remove contract, and
// building the comparison matrix.
package compare

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain"
	"github.com/specdex/specdex/internal/domain/catalog"
	domcmp "github.com/specdex/specdex/internal/domain/compare"
	"github.com/specdex/specdex/internal/metrics"
)

// Service handles comparison session operations.
type Service struct {
	catalog  CatalogReader
	sessions SessionStore
	logger   *zap.Logger
	capacity int
}

// New creates a comparison service. Non-positive capacities fall back to
// the domain default.
func New(catalogReader CatalogReader, sessions SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  catalogReader,
		sessions: sessions,
		logger:   logger,
		capacity: domcmp.DefaultCapacity,
	}
}

// WithCapacity overrides the per-session record limit.
func (s *Service) WithCapacity(capacity int) *Service {
	if capacity > 0 {
		s.capacity = capacity
	}
	return s
}

// Add puts a record into the session's set. It returns false, without
// error, when the set rejects the record (at capacity or already held).
func (s *Service) Add(ctx context.Context, sessionID, recordID string) (bool, error) {
	rec, err := s.catalog.Get(ctx, recordID)
	if err != nil {
		return false, fmt.Errorf("get record: %w", err)
	}

	set, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if !set.Add(rec) {
		return false, nil
	}
	if err := s.save(ctx, sessionID, set); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops a record from the session's set, reporting whether a
// removal occurred.
func (s *Service) Remove(ctx context.Context, sessionID, recordID string) (bool, error) {
	set, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if !set.Remove(recordID) {
		return false, nil
	}
	if err := s.save(ctx, sessionID, set); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops the whole session.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// IDs returns the session's held record IDs in insertion order. An unknown
// session is an empty session.
func (s *Service) IDs(ctx context.Context, sessionID string) ([]string, error) {
	set, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return domcmp.Serialize(set), nil
}

// Matrix builds the comparison grid for the session.
func (s *Service) Matrix(ctx context.Context, sessionID string) (domcmp.Matrix, error) {
	set, err := s.load(ctx, sessionID)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("error").Inc()
		return domcmp.Matrix{}, err
	}

	m := set.BuildMatrix()
	metrics.ComparisonsTotal.WithLabelValues("ok").Inc()
	if set.Len() > 0 {
		metrics.CompareSetSize.Observe(float64(set.Len()))
	}
	return m, nil
}

// load restores the session's set through the ordinary add contract.
// Records deleted from the catalog since the session was saved are dropped
// silently; the set reflects what still exists.
func (s *Service) load(ctx context.Context, sessionID string) (*domcmp.Set, error) {
	ids, err := s.sessions.Load(ctx, sessionID)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	set := domcmp.NewSetWithCapacity(s.capacity)
	for _, id := range ids {
		rec, err := s.catalog.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				s.logger.Debug("dropping stale comparison entry",
					zap.String("session", sessionID), zap.String("record", id))
				continue
			}
			return nil, fmt.Errorf("get record: %w", err)
		}
		set.Add(rec)
	}
	return set, nil
}

func (s *Service) save(ctx context.Context, sessionID string, set *domcmp.Set) error {
	if err := s.sessions.Save(ctx, sessionID, domcmp.Serialize(set)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Restore rebuilds a set from an external ID list (share link, local
// storage) without touching the session store.
func (s *Service) Restore(ctx context.Context, ids []string) *domcmp.Set {
	return domcmp.Restore(ids, func(id string) (catalog.Record, bool) {
		rec, err := s.catalog.Get(ctx, id)
		if err != nil {
			return catalog.Record{}, false
		}
		return rec, true
	})
}
