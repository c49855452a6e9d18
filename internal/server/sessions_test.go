package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradecast/internal/models"
)

func TestSessionRegistryExpiry(t *testing.T) {
	r := newSessionRegistry()

	expired := r.add(&models.Session{LoggedIn: true, Username: "alice"}, -time.Minute)
	assert.Nil(t, r.get(expired), "expired entry should not resolve")

	live := r.add(&models.Session{LoggedIn: true, Username: "bob"}, time.Minute)
	sess := r.get(live)
	assert.NotNil(t, sess)
	assert.Equal(t, "bob", sess.Username)
}

func TestSessionRegistrySweepsExpiredOnAdd(t *testing.T) {
	r := newSessionRegistry()

	expired := r.add(&models.Session{LoggedIn: true}, -time.Minute)
	r.add(&models.Session{LoggedIn: true}, time.Minute)

	r.mu.Lock()
	_, stillHeld := r.sessions[expired]
	size := len(r.sessions)
	r.mu.Unlock()

	assert.False(t, stillHeld, "expired entry should be evicted by the sweep")
	assert.Equal(t, 1, size)
}

func TestSessionRegistryRemove(t *testing.T) {
	r := newSessionRegistry()

	id := r.add(&models.Session{LoggedIn: true}, time.Minute)
	r.remove(id)
	assert.Nil(t, r.get(id))
}
