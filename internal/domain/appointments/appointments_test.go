package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/healthifyx/portal/internal/platform/gateway"
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

func (m *mockGateway) Post(_ context.Context, path string, body, out interface{}) error {
	m.calls = append(m.calls, call{"POST", path})
	m.bodies[path] = body
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

func (m *mockGateway) PostMultipart(_ context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error {
	m.calls = append(m.calls, call{"POST", path})
	m.fields = fields
	m.files = files
	if m.err != nil {
		return m.err
	}
	return m.respond(path, out)
}

func (m *mockGateway) called(method, path string) bool {
	for _, c := range m.calls {
		if c.method == method && c.path == path {
			return true
		}
	}
	return false
}

const mineJSON = `[
	{"_id":"a1","date":"2024-06-01T10:00:00Z","reason":"checkup","status":"pending"},
	{"_id":"a2","date":"2024-06-02T10:00:00Z","reason":"follow-up","status":"confirmed"},
	{"_id":"a3","date":"2024-06-03T10:00:00Z","reason":"scan","status":"cancelled"}
]`

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		status     Status
		confirm    bool
		cancel     bool
		reschedule bool
	}{
		{StatusPending, true, true, true},
		{StatusConfirmed, false, false, true},
		{StatusCancelled, false, false, false},
		{StatusRescheduled, false, false, false},
	}
	for _, tc := range cases {
		if got := tc.status.CanConfirm(); got != tc.confirm {
			t.Errorf("%s.CanConfirm: expected %v", tc.status, tc.confirm)
		}
		if got := tc.status.CanCancel(); got != tc.cancel {
			t.Errorf("%s.CanCancel: expected %v", tc.status, tc.cancel)
		}
		if got := tc.status.CanReschedule(); got != tc.reschedule {
			t.Errorf("%s.CanReschedule: expected %v", tc.status, tc.reschedule)
		}
	}
}

func TestStatusBadge(t *testing.T) {
	if StatusConfirmed.Badge() != "success" || StatusCancelled.Badge() != "danger" || StatusPending.Badge() != "secondary" {
		t.Error("unexpected badge mapping")
	}
}

func TestListMine(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	appts, err := svc.ListMine(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appts) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(appts))
	}
	if appts[0].Status != StatusPending {
		t.Errorf("expected pending, got %s", appts[0].Status)
	}
}

func TestBookValidation(t *testing.T) {
	svc := NewService(newMockGateway())
	cases := []BookRequest{
		{Date: "2024-06-01", Reason: "checkup"},
		{DoctorID: "d1", Reason: "checkup"},
		{DoctorID: "d1", Date: "2024-06-01"},
	}
	for _, req := range cases {
		if _, err := svc.Book(context.Background(), req, nil); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestBookSubmitsAndRefetches(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	req := BookRequest{DoctorID: "d1", Date: "2024-06-10T09:00:00Z", Reason: "checkup"}
	appts, err := svc.Book(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gw.called("POST", "/appointments") {
		t.Error("expected booking POST")
	}
	if !gw.called("GET", "/appointments/mine") {
		t.Error("expected re-fetch after booking")
	}
	if gw.fields["doctor"] != "d1" || gw.fields["reason"] != "checkup" {
		t.Errorf("unexpected fields %v", gw.fields)
	}
	if len(appts) != 3 {
		t.Errorf("expected re-fetched list, got %d", len(appts))
	}
}

func TestConfirmPending(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	if _, err := svc.Confirm(context.Background(), "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gw.called("PUT", "/appointments/a1/confirm") {
		t.Error("expected confirm PUT")
	}
}

func TestConfirmRejectsNonPending(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	if _, err := svc.Confirm(context.Background(), "a2"); err == nil {
		t.Error("expected error confirming a confirmed appointment")
	}
	if gw.called("PUT", "/appointments/a2/confirm") {
		t.Error("invalid transition must not reach the backend")
	}
}

func TestCancelRejectsCancelled(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	if _, err := svc.Cancel(context.Background(), "a3"); err == nil {
		t.Error("expected error cancelling a cancelled appointment")
	}
}

func TestRescheduleConfirmed(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	if _, err := svc.Reschedule(context.Background(), "a2", "2024-07-01T10:00:00Z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gw.called("PUT", "/appointments/a2/reschedule") {
		t.Error("expected reschedule PUT")
	}
	body, _ := gw.bodies["/appointments/a2/reschedule"].(map[string]string)
	if body["date"] != "2024-07-01T10:00:00Z" {
		t.Errorf("expected new date in body, got %v", body)
	}
}

func TestRescheduleRejectsCancelled(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = mineJSON
	svc := NewService(gw)

	if _, err := svc.Reschedule(context.Background(), "a3", "2024-07-01T10:00:00Z"); err == nil {
		t.Error("expected error rescheduling a cancelled appointment")
	}
}

func TestRescheduleRequiresDate(t *testing.T) {
	svc := NewService(newMockGateway())
	if _, err := svc.Reschedule(context.Background(), "a1", ""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestUnknownAppointment(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/mine"] = `[]`
	svc := NewService(gw)

	if _, err := svc.Confirm(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown appointment")
	}
}

func TestSuggestReschedule(t *testing.T) {
	gw := newMockGateway()
	svc := NewService(gw)

	err := svc.SuggestReschedule(context.Background(), "a1", "2024-07-01", "earlier slot opened")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := gw.bodies["/appointments/a1/suggest-reschedule"].(map[string]string)
	if body["suggestedDate"] != "2024-07-01" || body["message"] != "earlier slot opened" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestDoctorsSpecialtyFilter(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/doctors"] = `[
		{"_id":"d1","name":"Dr. Lee","specialty":"Cardiology"},
		{"_id":"d2","name":"Dr. Okafor","specialty":"Dermatology"},
		{"_id":"d3","name":"Dr. Chen","specialty":"cardiology"}
	]`
	svc := NewService(gw)

	all, err := svc.Doctors(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected all doctors, got %d", len(all))
	}

	cardio, err := svc.Doctors(context.Background(), "CARDIOLOGY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cardio) != 2 {
		t.Errorf("expected case-insensitive specialty match, got %d", len(cardio))
	}
}

func TestDoctorAvailability(t *testing.T) {
	gw := newMockGateway()
	gw.responses["/appointments/doctor/d1/availability"] = `[{"day":"Monday","from":"09:00","to":"12:00"}]`
	svc := NewService(gw)

	slots, err := svc.DoctorAvailability(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].Day != "Monday" {
		t.Errorf("unexpected slots %v", slots)
	}

	if _, err := svc.DoctorAvailability(context.Background(), ""); err == nil {
		t.Error("expected error for empty doctor id")
	}
}

func TestBackendFailurePropagates(t *testing.T) {
	gw := newMockGateway()
	gw.err = fmt.Errorf("backend down")
	svc := NewService(gw)

	if _, err := svc.ListMine(context.Background()); err == nil {
		t.Error("expected propagated error")
	}
}
