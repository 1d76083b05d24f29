// Package session keeps the process-lifetime map of bearer tokens to users.
// Sessions are not persisted: a restart logs everyone out.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultLifetime is how long a session stays valid after its creation.
const DefaultLifetime = 24 * time.Hour

const tokenBytes = 32 // 256 bits

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpired      = errors.New("session expired")
)

type Session struct {
	UserID  int
	Expires time.Time
}

type Registry struct {
	lifetime time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
}

func NewRegistry(lifetime time.Duration) *Registry {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Registry{
		lifetime: lifetime,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "generating random bytes")
	}
	return hex.EncodeToString(b), nil
}

// Create opens a session for `userID` and returns its token.
func (r *Registry) Create(userID int) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = Session{UserID: userID, Expires: r.now().Add(r.lifetime)}
	return token, nil
}

// Resolve returns the user id of the session `token`.
// Expired sessions are evicted on access; there is no background sweep.
func (r *Registry) Resolve(token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[token]
	if !ok {
		return 0, ErrInvalidToken
	}
	if sess.Expires.Before(r.now()) {
		delete(r.sessions, token)
		return 0, ErrExpired
	}
	return sess.UserID, nil
}

// Revoke closes the session `token`. Unknown tokens are ignored.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// RevokeUser closes every session of `userID`, except `keep`. It returns the number of sessions closed.
func (r *Registry) RevokeUser(userID int, keep string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for token, sess := range r.sessions {
		if sess.UserID == userID && token != keep {
			delete(r.sessions, token)
			n++
		}
	}
	return n
}

// Len returns the number of sessions held, expired ones included until they are accessed.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
