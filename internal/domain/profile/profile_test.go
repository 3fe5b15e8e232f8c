package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/session"
)

// -- Mock Gateway --

type call struct {
	method string
	path   string
}

type mockGateway struct {
	responses map[string]string
	calls     []call
	bodies    map[string]interface{}
	fields    map[string]string
	files     []gateway.File
	err       error
}

func newMockGateway() *mockGateway {
	return &mockGateway{responses: map[string]string{}, bodies: map[string]interface{}{}}
}

func (m *mockGateway) respond(path string, out interface{}) error {
	raw, ok := m.responses[path]
	if !ok || out == nil {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockGateway) Get(_ context.Context, path string, out interface{}) error {
	m.calls = append(m.calls, call{"GET", path})
	if m.err != nil {
		return m.err
	}
	return m.respond(path, out)
}

func (m *mockGateway) Put(_ context.Context, path string, body, out interface{}) error {
	m.calls = append(m.calls, call{"PUT", path})
	m.bodies[path] = body
	if m.err != nil {
		return m.err
	}
	return m.respond(path, out)
}

func (m *mockGateway) Patch(_ context.Context, path string, body, out interface{}) error {
	m.calls = append(m.calls, call{"PATCH", path})
	m.bodies[path] = body
	if m.err != nil {
		return m.err
	}
	return m.respond(path, out)
}

func (m *mockGateway) PutMultipart(_ context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error {
	m.calls = append(m.calls, call{"PUT", path})
	m.fields = fields
	m.files = files
	if m.err != nil {
		return m.err
	}
	return m.respond(path, out)
}

func patientCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		Token: "tok", Role: session.RolePatient, UserID: "p1",
	})
}

func TestMe(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/user/me"] = `{"_id":"p1","name":"Jordan Reyes","role":"patient","conditions":["asthma"]}`
	svc := NewService(gw)

	p, err := svc.Me(patientCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Jordan Reyes" || p.Role != session.RolePatient {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestUpdateDropsEmptyFields(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/user/me"] = `{"_id":"p1","name":"Jordan Reyes"}`
	svc := NewService(gw)

	fields := map[string]string{"name": "Jordan Reyes", "contact": "  "}
	if _, err := svc.Update(patientCtx(), fields, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gw.fields["contact"]; ok {
		t.Error("expected blank field to be dropped")
	}
	if gw.fields["name"] != "Jordan Reyes" {
		t.Errorf("expected name forwarded, got %v", gw.fields)
	}
}

func TestUpdateRejectsEmpty(t *testing.T) {
	svc := NewService(newMockGateway())
	if _, err := svc.Update(patientCtx(), map[string]string{"name": " "}, nil); err == nil {
		t.Error("expected error for empty update")
	}
}

func TestUpdateRefetches(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/user/me"] = `{"_id":"p1","name":"Updated"}`
	svc := NewService(gw)

	p, err := svc.Update(patientCtx(), map[string]string{"name": "Updated"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Updated" {
		t.Errorf("expected re-fetched profile, got %+v", p)
	}
	last := gw.calls[len(gw.calls)-1]
	if last.method != "GET" || last.path != "/user/me" {
		t.Errorf("expected trailing re-fetch, got %+v", last)
	}
}

func TestSetAvailability(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/user/me"] = `{"_id":"d1","availability":[{"day":"Monday","from":"09:00","to":"12:00"}]}`
	svc := NewService(gw)

	slots := []appointments.AvailabilitySlot{{Day: "Monday", From: "09:00", To: "12:00"}}
	p, err := svc.SetAvailability(patientCtx(), slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Availability) != 1 {
		t.Errorf("expected availability echoed back, got %+v", p.Availability)
	}
	body, _ := gw.bodies["/user/availability"].(map[string]interface{})
	if body == nil {
		t.Fatal("expected availability PUT body")
	}
}

func TestSetAvailabilityRejectsIncompleteSlot(t *testing.T) {
	svc := NewService(newMockGateway())
	slots := []appointments.AvailabilitySlot{{Day: "Monday", From: "09:00"}}
	if _, err := svc.SetAvailability(patientCtx(), slots); err == nil {
		t.Error("expected error for incomplete slot")
	}
}

func TestSetLocation(t *testing.T) {
	gw := newMockGateway()
	svc := NewService(gw)

	if err := svc.SetLocation(patientCtx(), Location{Lat: 48.2, Lng: 16.4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.calls[0].method != "PATCH" || gw.calls[0].path != "/user/p1/location" {
		t.Errorf("expected PATCH to caller's location, got %+v", gw.calls[0])
	}
}

func TestSetLocationValidatesRange(t *testing.T) {
	svc := NewService(newMockGateway())
	if err := svc.SetLocation(patientCtx(), Location{Lat: 99, Lng: 0}); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
	if err := svc.SetLocation(patientCtx(), Location{Lat: 0, Lng: 190}); err == nil {
		t.Error("expected error for out-of-range longitude")
	}
}

func TestSetLocationRequiresSession(t *testing.T) {
	svc := NewService(newMockGateway())
	if err := svc.SetLocation(context.Background(), Location{Lat: 1, Lng: 1}); err == nil {
		t.Error("expected error without a session")
	}
}
