package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthifyx/portal/internal/platform/session"
)

// Logger returns middleware that writes one structured line per request.
// When a session is attached the line carries the caller's role and user
// ID, so proxied backend traffic can be traced back to a portal user.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			if rid, ok := c.Get("request_id").(string); ok {
				evt = evt.Str("request_id", rid)
			}
			// The session middleware runs later in the chain and swaps
			// the request, so the session is read after next returns.
			if sess := session.FromContext(c.Request().Context()); sess.Present() {
				evt = evt.
					Str("role", string(sess.Role)).
					Str("user_id", sess.UserID)
			}

			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
