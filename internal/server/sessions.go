package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tradecast/internal/common"
	"tradecast/internal/models"
)

// authContext is the per-request authentication state resolved by the bearer
// middleware: the token ID and the Session it owns.
type authContext struct {
	TokenID string
	Session *models.Session
}

type contextKey int

const authContextKey contextKey = iota

func withAuthContext(ctx context.Context, ac *authContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

func authFromContext(ctx context.Context) *authContext {
	ac, _ := ctx.Value(authContextKey).(*authContext)
	return ac
}

// sessionRegistry maps token IDs to the Session each token owns. One Session
// per issued token, so every caller context holds exactly one session and
// there is no process-wide current session. Entries expire alongside their
// token so retired tokens do not accumulate sessions.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
}

type sessionEntry struct {
	sess      *models.Session
	expiresAt time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]sessionEntry)}
}

// add registers sess under a fresh token ID with the token's lifetime and
// returns the ID. Expired entries are swept on each add.
func (r *sessionRegistry) add(sess *models.Session, ttl time.Duration) string {
	id := uuid.New().String()
	now := time.Now()
	r.mu.Lock()
	for k, e := range r.sessions {
		if now.After(e.expiresAt) {
			delete(r.sessions, k)
		}
	}
	r.sessions[id] = sessionEntry{sess: sess, expiresAt: now.Add(ttl)}
	r.mu.Unlock()
	return id
}

func (r *sessionRegistry) get(id string) *models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(r.sessions, id)
		return nil
	}
	return e.sess
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// signToken creates an HS256 bearer token bound to a registry session.
func signToken(username string, isDemo bool, tokenID string, authCfg *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":  tokenID,
		"sub":  username,
		"demo": isDemo,
		"iss":  "tradecast-server",
		"iat":  now.Unix(),
		"exp":  now.Add(authCfg.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authCfg.JWTSecret))
}

// validateToken parses and verifies a bearer token, returning its token ID.
func validateToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", fmt.Errorf("token missing jti claim")
	}
	return jti, nil
}
