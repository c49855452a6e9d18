package storage

import (
	"tradecast/internal/common"
	"tradecast/internal/interfaces"
)

// Manager owns the two storage areas: user accounts and activity history.
// Each area gets its own backend instance so the file backend reproduces the
// on-disk contract of one document per area.
type Manager struct {
	users    interfaces.KVStore
	activity interfaces.KVStore
	logger   *common.Logger
}

// NewManager builds both storage areas from config.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	backend := config.Storage.Backend

	users, err := NewKVStore(logger, backend, config.Storage.Users.Path)
	if err != nil {
		return nil, err
	}

	activity, err := NewKVStore(logger, backend, config.Storage.Activity.Path)
	if err != nil {
		users.Close()
		return nil, err
	}

	logger.Info().
		Str("backend", backend).
		Str("users", config.Storage.Users.Path).
		Str("activity", config.Storage.Activity.Path).
		Msg("Storage initialized")

	return &Manager{users: users, activity: activity, logger: logger}, nil
}

// NewMemoryManager builds a manager with in-memory areas, for tests.
func NewMemoryManager(logger *common.Logger) *Manager {
	return &Manager{
		users:    NewMemoryStore(),
		activity: NewMemoryStore(),
		logger:   logger,
	}
}

func (m *Manager) UserStore() interfaces.KVStore {
	return m.users
}

func (m *Manager) ActivityStore() interfaces.KVStore {
	return m.activity
}

// Close shuts down both areas, returning the first error encountered.
func (m *Manager) Close() error {
	var firstErr error
	if m.users != nil {
		if err := m.users.Close(); err != nil {
			firstErr = err
		}
		m.users = nil
	}
	if m.activity != nil {
		if err := m.activity.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.activity = nil
	}
	return firstErr
}
