package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
)

// FileStore keeps one flat JSON document on disk: a top-level object mapping
// keys to values. The whole document is read before and rewritten after every
// mutation. A missing or corrupt file reads as an empty mapping; write
// failures surface to the mutating caller.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *common.Logger
}

// NewFileStore creates a file-backed store at path, creating the parent
// directory and an empty document if absent.
func NewFileStore(logger *common.Logger, path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory for %s: %w", path, err)
	}
	s := &FileStore{path: path, logger: logger}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(map[string]json.RawMessage{}); err != nil {
			return nil, err
		}
	}
	logger.Debug().Str("path", path).Msg("File store opened")
	return s, nil
}

// load reads the full document. Missing or corrupt files degrade to an empty
// mapping rather than failing the caller.
func (s *FileStore) load() map[string]json.RawMessage {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read store, treating as empty")
		}
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Corrupt store document, treating as empty")
		return map[string]json.RawMessage{}
	}
	return doc
}

// save rewrites the full document via temp file + rename.
func (s *FileStore) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.load()[key]
	if !ok {
		return interfaces.ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode value for key '%s': %w", key, err)
	}
	return nil
}

func (s *FileStore) Put(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key '%s': %w", key, err)
	}
	doc := s.load()
	doc[key] = raw
	return s.save(doc)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(doc)
}

func (s *FileStore) Scan(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for k := range s.load() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) Close() error {
	return nil
}
