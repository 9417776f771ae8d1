package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain/search/filter"
	"github.com/specdex/specdex/internal/domain/search/result"
	"github.com/specdex/specdex/internal/metrics"
)

// Params describes one search call: the filter state applied to a fresh
// engine over the shared index snapshot.
type Params struct {
	Text       string
	Ranges     map[string]filter.Range
	Categories []string
}

// Service adapts the single-caller Engine to concurrent transport use. It
// owns the normalized index snapshot and serializes (re)normalization; each
// Search call runs on its own Engine sharing the immutable snapshot, which
// satisfies the engine's one-owner contract.
type Service struct {
	repo      Repository
	logger    *zap.Logger
	threshold float64

	mu     sync.RWMutex
	index  []NormalizedRecord
	loaded bool
}

// New creates a search service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, threshold: DefaultFuzzyThreshold}
}

// WithThreshold overrides the fuzzy acceptance threshold.
func (s *Service) WithThreshold(t float64) *Service {
	if t > 0 && t <= 1 {
		s.threshold = t
	}
	return s
}

// Refresh reloads the catalog and rebuilds the index snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		metrics.IndexRefreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list records: %w", err)
	}
	index := normalizeRecords(records)
	metrics.IndexRefreshesTotal.WithLabelValues("ok").Inc()

	s.mu.Lock()
	s.index = index
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("search index refreshed", zap.Int("records", len(index)))
	return nil
}

// Invalidate marks the snapshot stale; the next Search refreshes it.
// Called by the record use case after catalog mutations.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

// Search runs one query against the current snapshot.
func (s *Service) Search(ctx context.Context, p Params) ([]result.Result, error) {
	start := time.Now()

	index, err := s.snapshot(ctx)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	eng := NewEngine(s.logger).WithThreshold(s.threshold).withIndex(index)
	eng.SetTextSearch(p.Text)
	for key, r := range p.Ranges {
		eng.AddRangeFilter(key, r.Min, r.Max)
	}
	for _, category := range p.Categories {
		eng.AddCategoryFilter(category)
	}

	results := eng.Search()

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(results)))
	return results, nil
}

// CheckIndex reports whether a usable index snapshot is available,
// building one first when stale. Used by health checks.
func (s *Service) CheckIndex(ctx context.Context) error {
	_, err := s.snapshot(ctx)
	return err
}

// snapshot returns the current index, refreshing it first when stale.
func (s *Service) snapshot(ctx context.Context) ([]NormalizedRecord, error) {
	s.mu.RLock()
	if s.loaded {
		index := s.index
		s.mu.RUnlock()
		return index, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, nil
}
