// Package session implements the session lifecycle manager. It mediates
// login, demo login, registration and logout, and is the only component that
// writes "login" and "logout" activity entries.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"tradecast/internal/common"
	"tradecast/internal/interfaces"
	"tradecast/internal/models"
	"tradecast/internal/services/account"
)

// ErrInvalidCredentials is returned for every authentication failure.
// Unknown usernames and wrong passwords are deliberately indistinguishable
// to avoid user enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements interfaces.SessionService.
type Service struct {
	accounts interfaces.AccountService
	logger   *common.Logger
}

// NewService creates a session lifecycle manager over the account service.
func NewService(accounts interfaces.AccountService, logger *common.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

// Login verifies credentials and, on success, populates sess and logs a
// "login" entry. On failure sess is left untouched and nothing is logged.
// passwordHash is a digest; plaintext never reaches this layer.
func (s *Service) Login(ctx context.Context, sess *models.Session, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return ErrInvalidCredentials
	}

	ok, err := s.accounts.VerifyUser(ctx, username, passwordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	sess.LoggedIn = true
	sess.Username = username
	sess.IsDemo = false
	sess.LoginTime = time.Now()

	s.accounts.LogActivity(ctx, username, models.ActivityLogin, nil)
	s.logger.Info().Str("username", username).Msg("User logged in")
	return nil
}

// DemoLogin populates sess with the ephemeral demo identity. The credential
// store is never consulted and nothing is persisted.
func (s *Service) DemoLogin(sess *models.Session) {
	sess.LoggedIn = true
	sess.Username = models.DemoUsername
	sess.IsDemo = true
	sess.LoginTime = time.Now()

	s.logger.Info().Msg("Demo session started")
}

// Logout logs a "logout" entry for non-demo sessions, then clears every
// session field unconditionally.
func (s *Service) Logout(ctx context.Context, sess *models.Session) {
	if sess.LoggedIn && !sess.IsDemo {
		s.accounts.LogActivity(ctx, sess.Username, models.ActivityLogout, nil)
		s.logger.Info().Str("username", sess.Username).Msg("User logged out")
	}
	sess.Clear()
}

// Register validates the registration form, digests the password and creates
// the account. Validation failures return a *models.ValidationError naming
// the field; a taken username reports (false, nil). Registration never logs
// the caller in.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (bool, error) {
	if err := validateRegistration(req); err != nil {
		return false, err
	}

	record := models.UserRecord{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     account.HashPassword(req.Password),
		FullName:         req.FullName,
		Phone:            req.Phone,
		ExperienceLevel:  req.ExperienceLevel,
		PreferredMarkets: req.PreferredMarkets,
		CreatedAt:        time.Now(),
	}

	return s.accounts.CreateUser(ctx, record)
}

// LogActivity records an entry for the session's user. No-op for logged-out
// and demo sessions — the demo identity is never persisted.
func (s *Service) LogActivity(ctx context.Context, sess *models.Session, activityType string, details map[string]any) {
	if sess == nil || !sess.LoggedIn || sess.IsDemo {
		return
	}
	s.accounts.LogActivity(ctx, sess.Username, activityType, details)
}

// validateRegistration applies the caller-side checks that gate CreateUser.
func validateRegistration(req models.RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.NewValidationError("form", "username, email and password are required")
	}
	if !req.AcceptTerms {
		return models.NewValidationError("accept_terms", "terms and conditions must be accepted")
	}
	if len(req.Username) < 3 {
		return models.NewValidationError("username", "must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return models.NewValidationError("password", "must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return models.NewValidationError("confirm_password", "passwords do not match")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return models.NewValidationError("email", "must be a valid email address")
	}
	if req.ExperienceLevel != "" && !models.ValidExperienceLevel(req.ExperienceLevel) {
		return models.NewValidationError("experience_level", "unknown experience level")
	}
	for _, market := range req.PreferredMarkets {
		if !models.ValidMarket(market) {
			return models.NewValidationError("preferred_markets", "unknown market '"+market+"'")
		}
	}
	return nil
}
