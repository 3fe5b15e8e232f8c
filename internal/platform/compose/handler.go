package compose

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/platform/guard"
	"github.com/healthifyx/portal/internal/platform/session"
)

// Handler serves the composed navigation and profile view for the caller's
// role. Pages consume this output instead of branching on the role string
// themselves.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ui/menu", h.GetMenu, guard.RequireAuthenticated())
	g.GET("/ui/profile-view", h.GetProfileView, guard.RequireAuthenticated())
}

func (h *Handler) GetMenu(c echo.Context) error {
	sess := session.FromContext(c.Request().Context())
	return c.JSON(http.StatusOK, Menu(sess.Role))
}

func (h *Handler) GetProfileView(c echo.Context) error {
	sess := session.FromContext(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]ViewID{"view": ProfileView(sess.Role)})
}
