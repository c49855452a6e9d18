// Package interfaces defines the contracts between tradecast components.
package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KVStore.Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KVStore is a pluggable key-value document store. Values are JSON-encoded
// by the implementation. Backends: in-memory (tests), whole-file JSON (the
// reference deployment), BadgerHold (embedded alternative).
//
// Mutations on a store are serialized by the implementation; concurrent
// writers from separate processes against the same backing file are not
// protected — a known limitation of the whole-file model.
type KVStore interface {
	// Get decodes the value for key into out, or returns ErrNotFound.
	Get(ctx context.Context, key string, out any) error
	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Scan returns the sorted keys beginning with prefix.
	Scan(ctx context.Context, prefix string) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// StorageManager owns the two storage areas. The users area maps
// username -> UserRecord; the activity area maps username -> []ActivityEntry.
type StorageManager interface {
	UserStore() KVStore
	ActivityStore() KVStore
	Close() error
}
