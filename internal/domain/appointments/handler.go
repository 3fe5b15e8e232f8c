package appointments

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
	g.GET("/appointments", h.List, guard.Require("/appointments"))
	g.POST("/appointments", h.Book, guard.Require("/book"))
	g.PUT("/appointments/:id/confirm", h.Confirm, guard.Require("/appointments"))
	g.PUT("/appointments/:id/cancel", h.Cancel, guard.Require("/appointments"))
	g.PUT("/appointments/:id/reschedule", h.Reschedule, guard.Require("/appointments"))
	g.POST("/appointments/:id/suggest-reschedule", h.SuggestReschedule, guard.Require("/appointments"))
	g.GET("/appointments/doctors", h.Doctors, guard.Require("/book"))
	g.GET("/appointments/doctors/:id/availability", h.DoctorAvailability, guard.Require("/book"))
}

func (h *Handler) List(c echo.Context) error {
	appts, err := h.svc.ListMine(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Book(c echo.Context) error {
	req := BookRequest{
		DoctorID: c.FormValue("doctor"),
		Date:     c.FormValue("date"),
		Reason:   c.FormValue("reason"),
	}

	var attachment *gateway.File
	if fh, err := c.FormFile("attachment"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable attachment")
		}
		defer src.Close()
		attachment = &gateway.File{Field: "attachment", Name: fh.Filename, Content: src}
	}

	appts, err := h.svc.Book(c.Request().Context(), req, attachment)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, appts)
}

func (h *Handler) Confirm(c echo.Context) error {
	appts, err := h.svc.Confirm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Cancel(c echo.Context) error {
	appts, err := h.svc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Reschedule(c echo.Context) error {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appts, err := h.svc.Reschedule(c.Request().Context(), c.Param("id"), body.Date)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) SuggestReschedule(c echo.Context) error {
	var body struct {
		SuggestedDate string `json:"suggestedDate"`
		Message       string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SuggestReschedule(c.Request().Context(), c.Param("id"), body.SuggestedDate, body.Message); err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) Doctors(c echo.Context) error {
	doctors, err := h.svc.Doctors(c.Request().Context(), c.QueryParam("specialty"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) DoctorAvailability(c echo.Context) error {
	slots, err := h.svc.DoctorAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, slots)
}
