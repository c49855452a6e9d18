package models

import "time"

// UserRecord represents a registered account. Username is the store key and
// immutable after creation. PasswordHash only ever holds a digest — plaintext
// passwords are hashed at the caller boundary before they reach any store.
type UserRecord struct {
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"password_hash"`
	FullName         string     `json:"full_name"`
	Phone            string     `json:"phone"`
	ExperienceLevel  string     `json:"experience_level"`
	PreferredMarkets []string   `json:"preferred_markets"`
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login"`
}

// IsZero reports whether the record is the empty placeholder returned for
// unknown usernames.
func (u UserRecord) IsZero() bool {
	return u.Username == ""
}

// RegisterRequest carries the registration form fields. ConfirmPassword and
// AcceptTerms participate in validation only and are never persisted.
type RegisterRequest struct {
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	ConfirmPassword  string   `json:"confirm_password"`
	FullName         string   `json:"full_name"`
	Phone            string   `json:"phone"`
	ExperienceLevel  string   `json:"experience_level"`
	PreferredMarkets []string `json:"preferred_markets"`
	AcceptTerms      bool     `json:"accept_terms"`
}
