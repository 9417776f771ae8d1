package compare

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/specdex/specdex/internal/db"
	"github.com/specdex/specdex/internal/domain"
)

// mockKV implements the consumer interface for tests.
type mockKV struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKV) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKV) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func TestLoad_NotFound(t *testing.T) {
	s := New(&mockKV{}, "specdex:", 0)
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Load() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	var storedKey string
	var storedVal []byte
	var storedTTL time.Duration
	kv := &mockKV{
		setFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
			storedKey, storedVal, storedTTL = key, value, ttl
			return nil
		},
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if key == storedKey {
				return storedVal, nil
			}
			return nil, db.ErrKeyNotFound
		},
	}
	s := New(kv, "specdex:", time.Hour)
	ctx := context.Background()

	ids := []string{"pump-b", "pump-a"}
	if err := s.Save(ctx, "s1", ids); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if storedKey != "specdex:compare:s1" {
		t.Errorf("stored key = %q", storedKey)
	}
	if storedTTL != time.Hour {
		t.Errorf("stored ttl = %v, want 1h", storedTTL)
	}

	back, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(back, ids) {
		t.Errorf("Load() = %v, want %v in stored order", back, ids)
	}
}

func TestSave_EmptyListDeletes(t *testing.T) {
	deleted := ""
	kv := &mockKV{
		delFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	s := New(kv, "specdex:", time.Hour)

	if err := s.Save(context.Background(), "s1", nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if deleted != "specdex:compare:s1" {
		t.Errorf("expected the session key deleted, got %q", deleted)
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	kv := &mockKV{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("not json"), nil
		},
	}
	s := New(kv, "specdex:", time.Hour)
	if _, err := s.Load(context.Background(), "s1"); err == nil {
		t.Error("expected decode error")
	}
}

func TestNew_TTLFallback(t *testing.T) {
	s := New(&mockKV{}, "specdex:", 0)
	if s.ttl != DefaultSessionTTL {
		t.Errorf("ttl = %v, want default", s.ttl)
	}
}
