package records

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
	g.GET("/records", h.List, guard.Require("/records"))
	g.POST("/records", h.Add, guard.Require("/records/add"))
	g.PATCH("/records/:id", h.Update, guard.Require("/records"))
	g.DELETE("/records/:id", h.Delete, guard.Require("/records"))
	g.PATCH("/records/:id/respond", h.Respond, guard.Require("/records"))
}

func (h *Handler) List(c echo.Context) error {
	views, err := h.svc.ListMine(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Add(c echo.Context) error {
	req := AddRequest{
		Diagnosis: c.FormValue("diagnosis"),
		Treatment: c.FormValue("treatment"),
		DoctorID:  c.FormValue("doctor"),
	}

	var report *gateway.File
	if fh, err := c.FormFile("report"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable report attachment")
		}
		defer src.Close()
		report = &gateway.File{Field: "report", Name: fh.Filename, Content: src}
	}

	views, err := h.svc.Add(c.Request().Context(), req, report)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, views)
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	views, err := h.svc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Delete(c echo.Context) error {
	views, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Respond(c echo.Context) error {
	var body struct {
		DoctorNote string `json:"doctorNote"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	views, err := h.svc.Respond(c.Request().Context(), c.Param("id"), body.DoctorNote)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}
