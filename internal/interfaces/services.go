package interfaces

import (
	"context"

	"tradecast/internal/models"
)

// AccountService is the credential store plus the per-user activity log.
type AccountService interface {
	// CreateUser inserts a new account. Returns (false, nil) without
	// mutating anything when the username is already taken. On success a
	// "registration" activity entry is appended best-effort.
	CreateUser(ctx context.Context, record models.UserRecord) (bool, error)

	// VerifyUser compares the stored digest against passwordHash with exact
	// equality. Unknown usernames and read failures report false.
	VerifyUser(ctx context.Context, username, passwordHash string) (bool, error)

	// GetUserInfo returns the stored record, or a zero record when the
	// username is unknown. It never returns a not-found error.
	GetUserInfo(ctx context.Context, username string) (models.UserRecord, error)

	// LogActivity appends one entry and truncates the user's history to the
	// most recent MaxActivityEntries. Best-effort: failures are logged, not
	// returned, and must never block the caller's primary action.
	LogActivity(ctx context.Context, username, activityType string, details map[string]any)

	// ListActivities returns up to limit of the most recent entries in
	// chronological order. Unknown users yield an empty slice.
	ListActivities(ctx context.Context, username string, limit int) ([]models.ActivityEntry, error)
}

// SessionService owns session lifecycle transitions. It is the only
// component that writes "login" and "logout" activity entries.
type SessionService interface {
	Login(ctx context.Context, sess *models.Session, username, passwordHash string) error
	DemoLogin(sess *models.Session)
	Logout(ctx context.Context, sess *models.Session)
	Register(ctx context.Context, req models.RegisterRequest) (bool, error)
	LogActivity(ctx context.Context, sess *models.Session, activityType string, details map[string]any)
}

// PredictorService is the prediction stub boundary. The result is synthetic
// and fixed-shape; callers treat it as a black box.
type PredictorService interface {
	Generate(ctx context.Context, params models.PredictionParams) (models.PredictionResult, error)
}
