// Package storage provides key-value persistence with pluggable backends.
package storage

import (
	"fmt"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
)

// Backend type constants.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// NewKVStore creates a KV store based on the configured backend.
// Supported backends: "file" (default), "memory", "badger".
func NewKVStore(logger *common.Logger, backend, path string) (interfaces.KVStore, error) {
	if backend == "" {
		backend = BackendFile
	}

	switch backend {
	case BackendFile:
		return NewFileStore(logger, path)

	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendBadger:
		return NewBadgerStore(logger, path)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: file, memory, badger)", backend)
	}
}
