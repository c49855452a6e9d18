package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
)

// kvDocument is the stored unit in the badger backend. Values are kept as
// JSON so the backend is interchangeable with the file store.
type kvDocument struct {
	Key  string
	Data []byte
}

// BadgerStore implements KVStore on BadgerHold. Path is a directory.
type BadgerStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewBadgerStore opens (creating if needed) a BadgerHold store at path.
func NewBadgerStore(logger *common.Logger, path string) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create badger path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store at %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Msg("Badger store opened")
	return &BadgerStore{db: db, logger: logger}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string, out any) error {
	var doc kvDocument
	if err := s.db.Get(key, &doc); err != nil {
		if err == badgerhold.ErrNotFound {
			return interfaces.ErrNotFound
		}
		return fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	if err := json.Unmarshal(doc.Data, out); err != nil {
		return fmt.Errorf("failed to decode value for key '%s': %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Put(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key '%s': %w", key, err)
	}
	if err := s.db.Upsert(key, &kvDocument{Key: key, Data: raw}); err != nil {
		return fmt.Errorf("failed to put key '%s': %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	if err := s.db.Delete(key, kvDocument{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Scan(_ context.Context, prefix string) ([]string, error) {
	var all []kvDocument
	if err := s.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	var keys []string
	for i := range all {
		if strings.HasPrefix(all[i].Key, prefix) {
			keys = append(keys, all[i].Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
