package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/specdex/specdex/internal/db"
	"github.com/specdex/specdex/internal/domain"
	domcat "github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/spec"
)

func testRecord(id string) domcat.Record {
	return domcat.Reconstruct(id, "Record "+id, spec.Categories{
		"performance": {"max_pressure": {Value: "150", Unit: "PSI"}},
	})
}

func TestUpsert_Create(t *testing.T) {
	var gotKey, gotPath string
	var gotData []byte
	s := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		jsonSetFn: func(_ context.Context, key, path string, data []byte) error {
			gotKey, gotPath, gotData = key, path, data
			return nil
		},
	}
	repo := New(s, "specdex:")

	created, err := repo.Upsert(context.Background(), testRecord("pump-a"))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !created {
		t.Error("expected created = true for a new record")
	}
	if gotKey != "specdex:record:pump-a" || gotPath != "$" {
		t.Errorf("stored at %s %s", gotKey, gotPath)
	}

	back, err := recordFromJSON(gotData)
	if err != nil {
		t.Fatalf("stored document does not round trip: %v", err)
	}
	if v, ok := back.Specifications().Lookup("performance.max_pressure"); !ok || v.Unit != "PSI" {
		t.Errorf("specifications lost in storage: %+v", v)
	}
}

func TestUpsert_Update(t *testing.T) {
	s := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	repo := New(s, "specdex:")

	created, err := repo.Upsert(context.Background(), testRecord("pump-a"))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if created {
		t.Error("expected created = false for an existing record")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := &mockStore{
		jsonGetFn: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return nil, db.ErrKeyNotFound
		},
	}
	repo := New(s, "specdex:")

	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("Get() error = %v, want ErrRecordNotFound", err)
	}
}

func TestGet_MalformedSpecificationsTolerated(t *testing.T) {
	s := &mockStore{
		jsonGetFn: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return []byte(`{"id":"x","title":"X","specifications":{"dims":"broken"}}`), nil
		},
	}
	repo := New(s, "specdex:")

	rec, err := repo.Get(context.Background(), "x")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(rec.Specifications()) != 0 {
		t.Error("malformed category should hydrate as no specifications")
	}
}

func scanningStore(ids ...string) *mockStore {
	keys := make([]string, len(ids))
	byKey := make(map[string][]byte, len(ids))
	for i, id := range ids {
		key := "specdex:record:" + id
		keys[i] = key
		data, _ := recordToJSON(testRecord(id))
		byKey[key] = data
	}
	return &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) { return keys, nil },
		jsonGetMultiFn: func(_ context.Context, ks []string) ([][]byte, error) {
			out := make([][]byte, len(ks))
			for i, k := range ks {
				out[i] = byKey[k]
			}
			return out, nil
		},
	}
}

func TestList_Pagination(t *testing.T) {
	// Scan returns keys unordered; listing must still be ID-ordered.
	repo := New(scanningStore("c", "a", "b", "d"), "specdex:")
	ctx := context.Background()

	page1, cursor, err := repo.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page1) != 2 || page1[0].ID() != "a" || page1[1].ID() != "b" {
		t.Fatalf("unexpected first page: %d records", len(page1))
	}
	if cursor != "b" {
		t.Fatalf("cursor = %q, want b", cursor)
	}

	page2, cursor, err := repo.List(ctx, cursor, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page2) != 2 || page2[0].ID() != "c" || page2[1].ID() != "d" {
		t.Fatalf("unexpected second page: %d records", len(page2))
	}
	if cursor != "" {
		t.Errorf("cursor after last page = %q, want empty", cursor)
	}
}

func TestListAll_Sorted(t *testing.T) {
	repo := New(scanningStore("b", "a"), "specdex:")

	recs, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	ids := make([]string, len(recs))
	for i := range recs {
		ids[i] = recs[i].ID()
	}
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Errorf("ListAll order = %v", ids)
	}
}

func TestListAll_SkipsDeletedMidScan(t *testing.T) {
	s := scanningStore("a", "b")
	inner := s.jsonGetMultiFn
	s.jsonGetMultiFn = func(ctx context.Context, ks []string) ([][]byte, error) {
		out, _ := inner(ctx, ks)
		out[0] = nil // deleted between scan and fetch
		return out, nil
	}
	repo := New(s, "specdex:")

	recs, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID() != "b" {
		t.Errorf("expected only the surviving record, got %d", len(recs))
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := New(&mockStore{}, "specdex:")
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("Delete() error = %v, want ErrRecordNotFound", err)
	}
}

func TestDelete_Success(t *testing.T) {
	deleted := ""
	s := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		delFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	repo := New(s, "specdex:")

	if err := repo.Delete(context.Background(), "pump-a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != "specdex:record:pump-a" {
		t.Errorf("deleted key = %q", deleted)
	}
}

func TestCount(t *testing.T) {
	repo := New(scanningStore("a", "b", "c"), "specdex:")
	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}
