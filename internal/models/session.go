package models

import "time"

// DemoUsername is the ephemeral identity used by demo logins. It is never
// written to the credential store.
const DemoUsername = "demo_user"

// Session is the login state owned by a single caller context. It is created
// zero-valued, populated by a successful login or demo login, and cleared by
// logout. There is no process-wide current session.
type Session struct {
	LoggedIn  bool      `json:"logged_in"`
	Username  string    `json:"username"`
	IsDemo    bool      `json:"is_demo"`
	LoginTime time.Time `json:"login_time"`
}

// Clear resets every field to its zero value.
func (s *Session) Clear() {
	*s = Session{}
}

// Duration returns how long the session has been live, or zero when logged out.
func (s *Session) Duration() time.Duration {
	if !s.LoggedIn || s.LoginTime.IsZero() {
		return 0
	}
	return time.Since(s.LoginTime)
}
