package guard

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/platform/session"
)

// Require returns middleware that enforces the destination's descriptor on
// every request that reaches it. Denials are redirects, never errors: no
// token sends the caller to the login page, a disallowed role sends them
// home. The session is read fresh from the request context each time, so a
// logout between two requests is observed immediately.
//
// Require panics when the destination is not in the table; that is a wiring
// mistake and should fail at startup, not at request time.
func Require(path string) echo.MiddlewareFunc {
	d, ok := Find(path)
	if !ok {
		panic(fmt.Sprintf("guard: unknown destination %q", path))
	}
	return Enforce(d)
}

// RequireAuthenticated returns middleware that admits any signed-in role.
// It covers chrome endpoints like the navigation menu, which every role
// sees but anonymous callers should not.
func RequireAuthenticated() echo.MiddlewareFunc {
	return Enforce(Descriptor{AllowedRoles: []session.Role{
		session.RolePatient,
		session.RoleDoctor,
		session.RoleAdmin,
	}})
}

// Enforce returns middleware enforcing an explicit descriptor.
func Enforce(d Descriptor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := Authorize(session.FromContext(c.Request().Context()), d)
			if decision.Allowed {
				return next(c)
			}
			return c.Redirect(http.StatusFound, decision.Location)
		}
	}
}
