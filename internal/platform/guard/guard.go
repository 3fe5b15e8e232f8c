package guard

import (
	"github.com/healthifyx/portal/internal/platform/session"
)

// Descriptor describes one destination the guard rules on. A nil AllowedRoles
// marks the route public; a protected route must list at least one role.
type Descriptor struct {
	Path         string
	AllowedRoles []session.Role
}

// Public reports whether the route is reachable without a session.
func (d Descriptor) Public() bool {
	return d.AllowedRoles == nil
}

// Decision is the outcome of an authorization check: either the navigation
// proceeds or the caller is redirected.
type Decision struct {
	Allowed  bool
	Location string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func RedirectTo(path string) Decision {
	return Decision{Location: path}
}

// Authorize decides whether the session may view the destination. It is a
// pure function, evaluated synchronously on every navigation: public routes
// are always allowed; a missing token redirects to the login page; a role
// outside the allowed set redirects home. Role mismatch is deliberately
// indistinguishable from a route that does not exist: an authenticated user
// of the wrong role lands on the home page, not on a forbidden page.
func Authorize(s session.Session, d Descriptor) Decision {
	if d.Public() {
		return Allow()
	}
	if !s.Present() {
		return RedirectTo("/login")
	}
	for _, role := range d.AllowedRoles {
		if s.Role == role {
			return Allow()
		}
	}
	return RedirectTo("/")
}
