package session

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	sessionKey   contextKey = "session"
	sessionIDKey contextKey = "session_id"
)

// Middleware resolves the caller's session on every request and stashes it in
// the request context. The session ID travels in an HttpOnly cookie set at
// login; a bearer Authorization header is accepted as a fallback for
// non-browser clients. Requests without a resolvable session proceed with the
// absent sentinel; denying them is the route guard's job, not this one's.
func Middleware(store Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessionIDFromRequest(c, cookieName)

			sess := Session{}
			if id != "" {
				found, err := store.Get(c.Request().Context(), id)
				if err == nil {
					sess = found
				}
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, sessionKey, sess)
			ctx = context.WithValue(ctx, sessionIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func sessionIDFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// FromContext returns the session resolved for this request, or the absent
// sentinel when there is none. It never fails.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

// IDFromContext returns the opaque session ID presented by the caller.
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// WithSession returns a context carrying the given session. Used by tests
// and by the auth flow right after login, before a cookie round trip.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}
