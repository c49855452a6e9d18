package server

import (
	"errors"
	"net/http"
	"time"

	"tradecast/internal/models"
	"tradecast/internal/services/account"
	"tradecast/internal/services/session"
)

// handleAuthRegister handles POST /api/auth/register.
// Registration never logs the caller in — the client follows up with a
// login call.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	created, err := s.app.Sessions.Register(r.Context(), req)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Registration failed")
		WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	if !created {
		WriteError(w, http.StatusConflict, "username already taken")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"username": req.Username,
			"email":    req.Email,
		},
	})
}

// handleAuthLogin handles POST /api/auth/login. The plaintext password is
// digested here, at the boundary — services and stores only see digests.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	sess := &models.Session{}

	err := s.app.Sessions.Login(ctx, sess, req.Username, account.HashPassword(req.Password))
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error().Err(err).Msg("Login failed")
		WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	tokenID := s.sessions.add(sess, s.app.Config.Auth.GetTokenExpiry())
	token, err := signToken(sess.Username, false, tokenID, &s.app.Config.Auth)
	if err != nil {
		s.sessions.remove(tokenID)
		s.logger.Error().Err(err).Msg("Failed to sign token for login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	user, _ := s.app.Accounts.GetUserInfo(ctx, sess.Username)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"user":  profileResponse(user),
			"session": map[string]interface{}{
				"username":   sess.Username,
				"is_demo":    sess.IsDemo,
				"login_time": sess.LoginTime.Format(time.RFC3339),
			},
		},
	})
}

// handleAuthDemo handles POST /api/auth/demo — an ephemeral session with no
// credential check and no persisted state.
func (s *Server) handleAuthDemo(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	sess := &models.Session{}
	s.app.Sessions.DemoLogin(sess)

	tokenID := s.sessions.add(sess, s.app.Config.Auth.GetTokenExpiry())
	token, err := signToken(sess.Username, true, tokenID, &s.app.Config.Auth)
	if err != nil {
		s.sessions.remove(tokenID)
		s.logger.Error().Err(err).Msg("Failed to sign token for demo login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"session": map[string]interface{}{
				"username":   sess.Username,
				"is_demo":    true,
				"login_time": sess.LoginTime.Format(time.RFC3339),
			},
		},
	})
}

// handleAuthLogout handles POST /api/auth/logout. The token's session is
// cleared and the token retired.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ac := requireSession(w, r)
	if ac == nil {
		return
	}

	s.app.Sessions.Logout(r.Context(), ac.Session)
	s.sessions.remove(ac.TokenID)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// handleAuthValidate handles GET /api/auth/validate — a snapshot of the
// token's session, including its running duration.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ac := requireSession(w, r)
	if ac == nil {
		return
	}

	sess := ac.Session
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"logged_in":        sess.LoggedIn,
			"username":         sess.Username,
			"is_demo":          sess.IsDemo,
			"login_time":       sess.LoginTime.Format(time.RFC3339),
			"duration_seconds": int(sess.Duration().Seconds()),
		},
	})
}

// requireSession returns the request's authContext, or writes a 401 and
// returns nil when the request carries no valid bearer token.
func requireSession(w http.ResponseWriter, r *http.Request) *authContext {
	ac := authFromContext(r.Context())
	if ac == nil || ac.Session == nil || !ac.Session.LoggedIn {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	return ac
}

// profileResponse builds a safe response from a UserRecord — never the digest.
func profileResponse(user models.UserRecord) map[string]interface{} {
	resp := map[string]interface{}{
		"username":          user.Username,
		"email":             user.Email,
		"full_name":         user.FullName,
		"phone":             user.Phone,
		"experience_level":  user.ExperienceLevel,
		"preferred_markets": user.PreferredMarkets,
		"created_at":        user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		resp["last_login"] = user.LastLogin.Format(time.RFC3339)
	}
	return resp
}
