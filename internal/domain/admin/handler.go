package admin

import (
	"bytes"
	"net/http"
	"time"

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
	g.GET("/admin/users", h.Users, guard.Require("/admin"))
	g.DELETE("/admin/users/:id", h.DeleteUser, guard.Require("/admin"))
	g.GET("/admin/doctors/pending", h.PendingDoctors, guard.Require("/admin"))
	g.PUT("/admin/doctors/:id/approve", h.ApproveDoctor, guard.Require("/admin"))
	g.PUT("/admin/doctors/:id/reject", h.RejectDoctor, guard.Require("/admin"))
	g.GET("/admin/records", h.Records, guard.Require("/admin/records"))
	g.DELETE("/admin/records/:id", h.DeleteRecord, guard.Require("/admin/records"))
	g.GET("/admin/records/export", h.ExportRecords, guard.Require("/admin/records"))
	g.GET("/admin/doctors", h.ApprovedDoctors, guard.Require("/admin/records"))
	g.GET("/admin/appointments", h.Appointments, guard.Require("/admin/appointments"))
	g.DELETE("/admin/appointments/:id", h.DeleteAppointment, guard.Require("/admin/appointments"))
	g.GET("/admin/dashboard", h.Dashboard, guard.Require("/admin/stats"))
	g.GET("/admin/email-logs", h.EmailLogs, guard.Require("/admin"))
	g.GET("/admin/prescription-logs", h.PrescriptionLogs, guard.Require("/admin/prescription-audit"))
	g.GET("/admin/pharmacies/:patientId", h.NearbyPharmacies, guard.Require("/admin/pharmacies"))
}

// filterFromQuery parses the record filter criteria. Dates use the
// YYYY-MM-DD form the date inputs emit; malformed dates are rejected.
func filterFromQuery(c echo.Context) (RecordFilter, error) {
	filter := RecordFilter{DoctorID: c.QueryParam("doctor")}
	if v := c.QueryParam("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return RecordFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
		}
		filter.Start = t
	}
	if v := c.QueryParam("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return RecordFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
		filter.End = t
	}
	return filter, nil
}

func (h *Handler) Users(c echo.Context) error {
	users, err := h.svc.Users(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	users, err := h.svc.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) PendingDoctors(c echo.Context) error {
	doctors, err := h.svc.PendingDoctors(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) ApproveDoctor(c echo.Context) error {
	doctors, err := h.svc.ApproveDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) RejectDoctor(c echo.Context) error {
	doctors, err := h.svc.RejectDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) ApprovedDoctors(c echo.Context) error {
	doctors, err := h.svc.ApprovedDoctors(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (h *Handler) Records(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	recs, err := h.svc.Records(c.Request().Context(), filter)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	recs, err := h.svc.DeleteRecord(c.Request().Context(), c.Param("id"), filter)
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) ExportRecords(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	recs, err := h.svc.Records(c.Request().Context(), filter)
	if err != nil {
		return gateway.HTTPError(err)
	}
	var buf bytes.Buffer
	if err := WriteRecordsCSV(&buf, recs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="medical_records.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) Appointments(c echo.Context) error {
	appts, err := h.svc.Appointments(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	appts, err := h.svc.DeleteAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Dashboard(c echo.Context) error {
	dash, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *Handler) EmailLogs(c echo.Context) error {
	logs, err := h.svc.EmailLogs(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) PrescriptionLogs(c echo.Context) error {
	logs, err := h.svc.PrescriptionLogs(c.Request().Context())
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) NearbyPharmacies(c echo.Context) error {
	pharmacies, err := h.svc.NearbyPharmacies(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return gateway.HTTPError(err)
	}
	return c.JSON(http.StatusOK, pharmacies)
}
