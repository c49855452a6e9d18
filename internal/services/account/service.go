// Package account implements the credential store and per-user activity log
// over the pluggable KV storage areas.
package account

import (
	"context"
	"errors"
	"time"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
	"tradecast/internal/models"
)

// Service implements interfaces.AccountService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates an account service over the given storage manager.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// CreateUser inserts record keyed by username. An existing username leaves
// the store untouched and reports (false, nil) — the caller decides the
// messaging. On success a "registration" activity entry is appended
// best-effort.
func (s *Service) CreateUser(ctx context.Context, record models.UserRecord) (bool, error) {
	users := s.storage.UserStore()

	var existing models.UserRecord
	err := users.Get(ctx, record.Username, &existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return false, err
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := users.Put(ctx, record.Username, record); err != nil {
		return false, err
	}

	s.logger.Info().Str("username", record.Username).Msg("User created")
	s.LogActivity(ctx, record.Username, models.ActivityRegistration, nil)
	return true, nil
}

// VerifyUser compares the stored digest with passwordHash using exact
// equality. Unknown usernames and read failures report false — the store is
// treated as empty on read failure, never fatal.
func (s *Service) VerifyUser(ctx context.Context, username, passwordHash string) (bool, error) {
	var record models.UserRecord
	if err := s.storage.UserStore().Get(ctx, username, &record); err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Err(err).Str("username", username).Msg("User lookup failed during verification")
		}
		return false, nil
	}
	return record.PasswordHash == passwordHash, nil
}

// GetUserInfo returns the stored record, or a zero record when absent. Read
// failures also yield the zero record.
func (s *Service) GetUserInfo(ctx context.Context, username string) (models.UserRecord, error) {
	var record models.UserRecord
	if err := s.storage.UserStore().Get(ctx, username, &record); err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Err(err).Str("username", username).Msg("User lookup failed")
		}
		return models.UserRecord{}, nil
	}
	return record, nil
}

// LogActivity appends one entry to the user's history and truncates it to
// the most recent MaxActivityEntries, oldest dropped first. Best-effort: a
// failed write is logged and swallowed so the caller's primary action is
// never blocked.
func (s *Service) LogActivity(ctx context.Context, username, activityType string, details map[string]any) {
	store := s.storage.ActivityStore()

	var entries []models.ActivityEntry
	if err := store.Get(ctx, username, &entries); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		s.logger.Warn().Err(err).Str("username", username).Msg("Failed to read activity history, starting fresh")
		entries = nil
	}

	entries = append(entries, models.NewActivityEntry(activityType, details))
	if len(entries) > models.MaxActivityEntries {
		entries = entries[len(entries)-models.MaxActivityEntries:]
	}

	if err := store.Put(ctx, username, entries); err != nil {
		s.logger.Warn().Err(err).
			Str("username", username).
			Str("activity_type", activityType).
			Msg("Failed to persist activity entry")
	}
}

// ListActivities returns up to limit of the most recent entries in
// chronological order. Unknown users and read failures yield an empty slice.
func (s *Service) ListActivities(ctx context.Context, username string, limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := s.storage.ActivityStore().Get(ctx, username, &entries); err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Err(err).Str("username", username).Msg("Failed to read activity history")
		}
		return []models.ActivityEntry{}, nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
