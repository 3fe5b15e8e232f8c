package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/guard"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/analytics/insights", h.Insights, guard.Require("/records/analyze"))
	g.GET("/analytics/patients/:id", h.ForPatient, guard.Require("/records/analytics"))
	g.POST("/analytics/patients/:id/summary", h.GenerateSummary, guard.Require("/records/analytics"))
	g.PUT("/analytics/patients/:id/summary", h.SaveSummary, guard.Require("/records/analytics"))
}

func (h *Handler) Insights(c echo.Context) error {
	out, err := h.svc.Insights(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ForPatient(c echo.Context) error {
	out, err := h.svc.ForPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GenerateSummary(c echo.Context) error {
	summary, err := h.svc.GenerateSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) SaveSummary(c echo.Context) error {
	var body struct {
		Summary string `json:"summary"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveSummary(c.Request().Context(), c.Param("id"), body.Summary); err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": body.Summary})
}
