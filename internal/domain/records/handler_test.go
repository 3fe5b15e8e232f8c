package records

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthifyx/portal/internal/platform/session"
)

func newTestHandler(gw *mockGateway) (*Handler, *echo.Echo) {
	return NewHandler(NewService(gw)), echo.New()
}

func patientRequest(e *echo.Echo, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := session.WithSession(req.Context(), session.Session{
		Token: "tok", Role: session.RolePatient, UserID: "p1",
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerList(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/records/mine"] = recordListJSON
	h, e := newTestHandler(gw)

	c, rec := patientRequest(e, http.MethodGet, "/api/v1/records", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var views []View
	json.Unmarshal(rec.Body.Bytes(), &views)
	if len(views) != 2 {
		t.Errorf("expected 2 views, got %d", len(views))
	}
	if views[0].Severity == nil {
		t.Error("expected severity in response")
	}
}

func TestHandlerUpdateBadBody(t *testing.T) {
	h, e := newTestHandler(newMockGateway())

	c, _ := patientRequest(e, http.MethodPatch, "/api/v1/records/r1", `{"diagnosis":`)
	if err := h.Update(c); err == nil {
		t.Error("expected bind error")
	}
}

func TestHandlerRespond(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/records/doctor/mine"] = `[]`
	h, e := newTestHandler(gw)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/records/r1/respond", strings.NewReader(`{"doctorNote":"rest up"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	ctx := session.WithSession(req.Context(), session.Session{
		Token: "tok", Role: session.RoleDoctor, UserID: "d1",
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Respond(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.calls[0].path != "/records/respond/r1" {
		t.Errorf("expected respond path, got %s", gw.calls[0].path)
	}
}
