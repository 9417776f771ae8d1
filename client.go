package specdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/db"
	dbRedis "github.com/specdex/specdex/internal/db/redis"
	catalogrepo "github.com/specdex/specdex/internal/repository/catalog"
	comparerepo "github.com/specdex/specdex/internal/repository/compare"
	compareuc "github.com/specdex/specdex/internal/usecase/compare"
	datasetuc "github.com/specdex/specdex/internal/usecase/dataset"
	recorduc "github.com/specdex/specdex/internal/usecase/record"
	searchuc "github.com/specdex/specdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "specdex:"
)

// Client is the specdex SDK entry point.
type Client struct {
	store      db.Store
	recordSvc  *recorduc.Service
	searchSvc  *searchuc.Service
	compareSvc *compareuc.Service
	datasetSvc *datasetuc.Service
}

// New creates a specdex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("specdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("specdex: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("specdex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := cfg.keyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	ttl := cfg.sessionTTL
	if ttl <= 0 {
		ttl = comparerepo.DefaultSessionTTL
	}

	catRepo := catalogrepo.New(store, prefix)
	sessions := comparerepo.New(store, prefix, ttl)

	searchSvc := searchuc.New(catRepo, logger)
	if cfg.fuzzyThreshold > 0 {
		searchSvc = searchSvc.WithThreshold(cfg.fuzzyThreshold)
	}
	recordSvc := recorduc.New(catRepo, searchSvc)
	compareSvc := compareuc.New(catRepo, sessions, logger)
	if cfg.compareCapacity > 0 {
		compareSvc = compareSvc.WithCapacity(cfg.compareCapacity)
	}
	datasetSvc := datasetuc.New(catRepo, searchSvc, logger)

	return &Client{
		store:      store,
		recordSvc:  recordSvc,
		searchSvc:  searchSvc,
		compareSvc: compareSvc,
		datasetSvc: datasetSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Records returns the catalog record service.
func (c *Client) Records() *RecordService {
	return &RecordService{svc: c.recordSvc}
}

// Search returns a fluent search builder.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{svc: c.searchSvc}
}

// Compare returns the comparison service for a given session.
func (c *Client) Compare(sessionID string) *CompareService {
	return &CompareService{session: sessionID, svc: c.compareSvc}
}

// Datasets returns the dataset import/export service.
func (c *Client) Datasets() *DatasetService {
	return &DatasetService{svc: c.datasetSvc}
}
