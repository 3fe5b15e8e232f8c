package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/guard"
)

// profileFields are the editable form fields forwarded on update. Role
// determines which of them the backend accepts.
var profileFields = []string{
	"name", "email", "contact", "emergencyContact", "medicalHistory",
	"conditions", "specialty", "licenseNumber",
}

// attachmentFields are the optional uploads accepted on update.
var attachmentFields = []string{"avatar", "prescriptionFile", "licenseFile"}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.Me, guard.Require("/profile"))
	g.PUT("/profile", h.Update, guard.Require("/profile"))
	g.PUT("/profile/availability", h.SetAvailability, guard.Require("/availability"))
	g.PATCH("/profile/location", h.SetLocation, guard.Require("/set-location"))
}

func (h *Handler) Me(c echo.Context) error {
	p, err := h.svc.Me(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	fields := make(map[string]string, len(profileFields))
	for _, name := range profileFields {
		if v := c.FormValue(name); v != "" {
			fields[name] = v
		}
	}

	var files []gateway.File
	for _, name := range attachmentFields {
		fh, err := c.FormFile(name)
		if err != nil {
			continue
		}
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable "+name)
		}
		defer src.Close()
		files = append(files, gateway.File{Field: name, Name: fh.Filename, Content: src})
	}

	p, err := h.svc.Update(c.Request().Context(), fields, files)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) SetAvailability(c echo.Context) error {
	var body struct {
		Availability []appointments.AvailabilitySlot `json:"availability"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.SetAvailability(c.Request().Context(), body.Availability)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) SetLocation(c echo.Context) error {
	var loc Location
	if err := c.Bind(&loc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetLocation(c.Request().Context(), loc); err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "saved"})
}
