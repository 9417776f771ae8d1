// Package catalog stores catalog records as JSON documents in Redis.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specdex/specdex/internal/db"
	"github.com/specdex/specdex/internal/domain"
	domcat "github.com/specdex/specdex/internal/domain/catalog"
)

// store is the consumer interface for records (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the catalog record storage contracts.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. Keys are laid out as
// "<prefix>record:<id>".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(id string) string {
	return r.prefix + "record:" + id
}

// Upsert stores a record, reporting whether it was created rather than
// replaced.
func (r *Repo) Upsert(ctx context.Context, rec domcat.Record) (bool, error) {
	key := r.key(rec.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}

	data, err := recordToJSON(rec)
	if err != nil {
		return false, err
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("set record %s: %w", rec.ID(), err)
	}
	return !exists, nil
}

// Get retrieves a record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcat.Record, error) {
	data, err := r.store.JSONGet(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcat.Record{}, domain.ErrRecordNotFound
		}
		return domcat.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return recordFromJSON(data)
}

// List returns one page of records ordered by ID. The cursor is the last
// ID of the previous page; an empty next cursor means the listing is done.
func (r *Repo) List(ctx context.Context, cursor string, limit int) ([]domcat.Record, string, error) {
	ids, err := r.ids(ctx)
	if err != nil {
		return nil, "", err
	}

	start := 0
	if cursor != "" {
		start = sort.SearchStrings(ids, cursor)
		if start < len(ids) && ids[start] == cursor {
			start++
		}
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	if start >= len(ids) {
		return nil, "", nil
	}

	recs, err := r.fetch(ctx, ids[start:end])
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if end < len(ids) && len(recs) > 0 {
		nextCursor = ids[end-1]
	}
	return recs, nextCursor, nil
}

// ListAll returns every stored record ordered by ID.
func (r *Repo) ListAll(ctx context.Context) ([]domcat.Record, error) {
	ids, err := r.ids(ctx)
	if err != nil {
		return nil, err
	}
	return r.fetch(ctx, ids)
}

// Delete removes a record.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	ids, err := r.ids(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ids scans all record keys and returns the sorted bare IDs.
func (r *Repo) ids(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	ids := make([]string, 0, len(keys))
	keyPrefix := r.key("")
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	sort.Strings(ids)
	return ids, nil
}

// fetch pipelines document reads for a page of IDs, skipping records
// deleted between the scan and the read.
func (r *Repo) fetch(ctx context.Context, ids []string) ([]domcat.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	docs, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	recs := make([]domcat.Record, 0, len(docs))
	for _, data := range docs {
		if data == nil {
			continue
		}
		rec, err := recordFromJSON(data)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
