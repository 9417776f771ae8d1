// Package record handles catalog record CRUD and keeps the search index in
// step with catalog mutations.
package record

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/specdex/specdex/internal/domain"
	"github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/spec"
)

// Service handles catalog record operations.
type Service struct {
	repo            Repository
	index           IndexInvalidator
	defaultPageSize int
	maxPageSize     int
}

// New creates a record service. The invalidator may be nil when no search
// index is attached (import tooling).
func New(repo Repository, index IndexInvalidator) *Service {
	return &Service{
		repo:            repo,
		index:           index,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Upsert validates and stores a record. A missing ID gets a generated ULID
// so imported rows without identifiers stay addressable. Returns the stored
// record and whether it was created rather than updated.
func (s *Service) Upsert(ctx context.Context, id, title string, specs spec.Categories) (catalog.Record, bool, error) {
	if id == "" {
		id = ulid.MustNew(ulid.Now(), rand.Reader).String()
	}

	rec, err := catalog.New(id, title, specs)
	if err != nil {
		return catalog.Record{}, false, fmt.Errorf("validate record: %w: %w", domain.ErrInvalidRecord, err)
	}

	created, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return catalog.Record{}, false, fmt.Errorf("upsert record: %w", err)
	}

	s.invalidate()
	return rec, created, nil
}

// Get retrieves a record by ID.
func (s *Service) Get(ctx context.Context, id string) (catalog.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns a paginated record page.
func (s *Service) List(ctx context.Context, cursor string, limit int) ([]catalog.Record, string, error) {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	recs, nextCursor, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list records: %w", err)
	}
	return recs, nextCursor, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.invalidate()
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

func (s *Service) invalidate() {
	if s.index != nil {
		s.index.Invalidate()
	}
}
