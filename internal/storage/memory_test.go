package storage

import (
	"context"
	"errors"
	"testing"

	"tradecast/internal/interfaces"
)

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "k1", map[string]int{"n": 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got map[string]int
	if err := store.Get(ctx, "k1", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got["n"] != 1 {
		t.Errorf("got %v", got)
	}

	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Get(ctx, "k1", &got); !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDecoupledValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := map[string]string{"a": "1"}
	store.Put(ctx, "k", original)

	// Mutating the stored-in value must not leak into the store.
	original["a"] = "mutated"

	var got map[string]string
	store.Get(ctx, "k", &got)
	if got["a"] != "1" {
		t.Errorf("store should hold an encoded copy, got %v", got)
	}
}

func TestMemoryStoreScan(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "b", 1)
	store.Put(ctx, "a", 2)
	store.Put(ctx, "ab", 3)

	keys, err := store.Scan(ctx, "a")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "ab" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestFactoryUnknownBackend(t *testing.T) {
	if _, err := NewKVStore(nil, "cassandra", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}
