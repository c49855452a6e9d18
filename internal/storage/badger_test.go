package storage

import (
	"context"
	"errors"
	"testing"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(common.NewSilentLogger(), t.TempDir())
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerStoreCRUD(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	type rec struct {
		Name string `json:"name"`
	}

	if err := store.Put(ctx, "alice", rec{Name: "Alice"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got rec
	if err := store.Get(ctx, "alice", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("got %+v", got)
	}

	// Overwrite
	if err := store.Put(ctx, "alice", rec{Name: "Alice II"}); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	store.Get(ctx, "alice", &got)
	if got.Name != "Alice II" {
		t.Errorf("expected overwrite, got %+v", got)
	}

	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Get(ctx, "alice", &got); !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBadgerStoreScan(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	store.Put(ctx, "alice", 1)
	store.Put(ctx, "albert", 2)
	store.Put(ctx, "bob", 3)

	keys, err := store.Scan(ctx, "al")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(keys) != 2 || keys[0] != "albert" || keys[1] != "alice" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestBadgerStoreInvalidPath(t *testing.T) {
	if _, err := NewBadgerStore(common.NewSilentLogger(), "/dev/null/impossible"); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestBadgerStoreCloseNil(t *testing.T) {
	store := &BadgerStore{}
	if err := store.Close(); err != nil {
		t.Errorf("Close on nil db should not error: %v", err)
	}
}
