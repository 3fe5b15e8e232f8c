package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/session"
)

type Handler struct {
	svc        *Service
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

func NewHandler(svc *Service, cookieName string, cookieTTL time.Duration, secure bool) *Handler {
	return &Handler{svc: svc, cookieName: cookieName, cookieTTL: cookieTTL, secure: secure}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/google", h.GoogleRegister)
	g.POST("/auth/forgot-password", h.ForgotPassword)
	g.POST("/auth/logout", h.Logout)
	g.GET("/auth/session", h.Session)
}

// setSessionCookie hands the opaque session ID to the browser. The token
// itself never leaves the server.
func (h *Handler) setSessionCookie(c echo.Context, id string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var creds Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	est, err := h.svc.Login(c.Request().Context(), creds)
	if err != nil {
		return gateway.HTTPError(err)
	}
	h.setSessionCookie(c, est.ID, h.cookieTTL)
	return c.JSON(http.StatusOK, est)
}

func (h *Handler) Register(c echo.Context) error {
	var reg Registration
	if err := c.Bind(&reg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	est, err := h.svc.Register(c.Request().Context(), reg)
	if err != nil {
		return gateway.HTTPError(err)
	}
	h.setSessionCookie(c, est.ID, h.cookieTTL)
	return c.JSON(http.StatusCreated, est)
}

func (h *Handler) GoogleRegister(c echo.Context) error {
	var signup GoogleSignup
	if err := c.Bind(&signup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	est, err := h.svc.GoogleRegister(c.Request().Context(), signup)
	if err != nil {
		return gateway.HTTPError(err)
	}
	h.setSessionCookie(c, est.ID, h.cookieTTL)
	return c.JSON(http.StatusOK, est)
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ForgotPassword(c.Request().Context(), body.Email); err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.svc.Logout(ctx, session.IDFromContext(ctx)); err != nil {
		return gateway.HTTPError(err)
	}
	h.setSessionCookie(c, "", -time.Second)
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Session reports who the caller is, for page-load bootstrapping.
func (h *Handler) Session(c echo.Context) error {
	s := session.FromContext(c.Request().Context())
	if !s.Present() {
		return c.JSON(http.StatusOK, map[string]interface{}{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"role":          s.Role,
		"userId":        s.UserID,
	})
}
