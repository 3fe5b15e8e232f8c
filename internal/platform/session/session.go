package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSession is returned by Set when the triple is incomplete or
	// the bearer token is already expired.
	ErrInvalidSession = errors.New("invalid session")
	// ErrNoSession is returned by Get when no session exists for the ID.
	ErrNoSession = errors.New("no session")
)

// Role is the authenticated role carried by a session. The backend enforces
// the real permissions; the portal uses the role only for route authorization
// and view composition.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Session is the client-held proof of authentication: the backend-issued
// bearer token plus the role and user ID derived from it. The zero value is
// the absent sentinel.
type Session struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"user_id"`
}

// Present reports whether the session holds a token. The store never
// persists a partial triple, so Present implies role and user ID are set.
func (s Session) Present() bool {
	return s.Token != ""
}

// Store holds sessions keyed by an opaque session ID. Set stores the full
// triple atomically, Get returns ErrNoSession for unknown IDs, and Clear is
// idempotent.
type Store interface {
	Set(ctx context.Context, id string, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Clear(ctx context.Context, id string) error
}

// validate rejects incomplete triples so a session is either fully present
// or fully absent.
func validate(id string, s Session) error {
	if id == "" {
		return fmt.Errorf("%w: empty session id", ErrInvalidSession)
	}
	if s.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidSession)
	}
	if s.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidSession)
	}
	if !s.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidSession, s.Role)
	}
	return nil
}

// ttlFor derives the store TTL for a session. When the backend token is a
// JWT with an exp claim the session cannot outlive it; otherwise the token
// is treated as opaque and the configured TTL applies. An already expired
// token is invalid.
func ttlFor(token string, fallback time.Duration) (time.Duration, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return fallback, nil
	}
	if claims.ExpiresAt == nil {
		return fallback, nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return 0, fmt.Errorf("%w: token expired", ErrInvalidSession)
	}
	if remaining < fallback {
		return remaining, nil
	}
	return fallback, nil
}
