package prescriptions

import (
	"net/http"
	"strconv"

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
	g.GET("/prescriptions", h.List, guard.Require("/prescriptions"))
	g.POST("/prescriptions", h.Issue, guard.Require("/prescriptions/add"))
	g.PUT("/prescriptions/:id", h.Amend, guard.Require("/prescriptions/add"))
	g.GET("/prescriptions/patients", h.Patients, guard.Require("/prescriptions/add"))
	g.POST("/prescriptions/suggest", h.SuggestMedications, guard.Require("/prescriptions/add"))
}

func (h *Handler) List(c echo.Context) error {
	views, err := h.svc.List(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) Patients(c echo.Context) error {
	patients, err := h.svc.Patients(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Issue(c echo.Context) error {
	isDraft, _ := strconv.ParseBool(c.FormValue("isDraft"))
	req := IssueRequest{
		PatientID:   c.FormValue("patientId"),
		Notes:       c.FormValue("notes"),
		Medications: c.FormValue("medications"),
		IsDraft:     isDraft,
	}

	var signature *gateway.File
	if fh, err := c.FormFile("signature"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable signature")
		}
		defer src.Close()
		signature = &gateway.File{Field: "signature", Name: fh.Filename, Content: src}
	}

	views, err := h.svc.Issue(c.Request().Context(), req, signature)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, views)
}

func (h *Handler) Amend(c echo.Context) error {
	var signature *gateway.File
	if fh, err := c.FormFile("signature"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable signature")
		}
		defer src.Close()
		signature = &gateway.File{Field: "signature", Name: fh.Filename, Content: src}
	}

	views, err := h.svc.Amend(c.Request().Context(), c.Param("id"), c.FormValue("notes"), c.FormValue("medications"), signature)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) SuggestMedications(c echo.Context) error {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	suggestion, err := h.svc.SuggestMedications(c.Request().Context(), body.Notes)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"suggestion": suggestion})
}
