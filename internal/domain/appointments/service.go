package appointments

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthifyx/portal/internal/domain/records"
	"github.com/healthifyx/portal/internal/platform/gateway"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// ListMine fetches the caller's appointments. The backend scopes the
// listing to the authenticated patient or doctor.
func (s *Service) ListMine(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	if err := s.gw.Get(ctx, "/appointments/mine", &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// find locates one of the caller's appointments by id so transitions can
// be checked against its current status before dispatch.
func (s *Service) find(ctx context.Context, id string) (Appointment, error) {
	appts, err := s.ListMine(ctx)
	if err != nil {
		return Appointment{}, err
	}
	for _, a := range appts {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, fmt.Errorf("appointment %s not found", id)
}

// BookRequest is a patient's new appointment submission.
type BookRequest struct {
	DoctorID string
	Date     string
	Reason   string
}

func (r BookRequest) validate() error {
	if r.DoctorID == "" {
		return fmt.Errorf("doctor is required")
	}
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// Book submits a new appointment, with an optional attachment, then
// returns the re-fetched list.
func (s *Service) Book(ctx context.Context, req BookRequest, attachment *gateway.File) ([]Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"doctor": req.DoctorID,
		"date":   req.Date,
		"reason": req.Reason,
	}
	var files []gateway.File
	if attachment != nil {
		files = append(files, *attachment)
	}
	if err := s.gw.PostMultipart(ctx, "/appointments", fields, files, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// Confirm moves a pending appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, id string) ([]Appointment, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanConfirm() {
		return nil, transitionError(appt.Status, "confirm")
	}
	if err := s.gw.Put(ctx, "/appointments/"+id+"/confirm", nil, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// Cancel moves a pending appointment to cancelled. Cancelled is final.
func (s *Service) Cancel(ctx context.Context, id string) ([]Appointment, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanCancel() {
		return nil, transitionError(appt.Status, "cancel")
	}
	if err := s.gw.Put(ctx, "/appointments/"+id+"/cancel", nil, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// Reschedule moves a pending or confirmed appointment to a new date.
func (s *Service) Reschedule(ctx context.Context, id, date string) ([]Appointment, error) {
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanReschedule() {
		return nil, transitionError(appt.Status, "reschedule")
	}
	body := map[string]string{"date": date}
	if err := s.gw.Put(ctx, "/appointments/"+id+"/reschedule", body, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// SuggestReschedule sends the patient an emailed proposal for a new date
// without mutating the appointment.
func (s *Service) SuggestReschedule(ctx context.Context, id, suggestedDate, message string) error {
	if suggestedDate == "" {
		return fmt.Errorf("suggested date is required")
	}
	body := map[string]string{
		"suggestedDate": suggestedDate,
		"message":       message,
	}
	return s.gw.Post(ctx, "/appointments/"+id+"/suggest-reschedule", body, nil)
}

// Doctors lists bookable doctors, optionally narrowed to a specialty by
// case-insensitive match.
func (s *Service) Doctors(ctx context.Context, specialty string) ([]records.PersonRef, error) {
	var doctors []records.PersonRef
	if err := s.gw.Get(ctx, "/appointments/doctors", &doctors); err != nil {
		return nil, err
	}
	if specialty == "" {
		return doctors, nil
	}
	filtered := make([]records.PersonRef, 0, len(doctors))
	for _, d := range doctors {
		if strings.EqualFold(d.Specialty, specialty) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// DoctorAvailability fetches the weekly windows a doctor has published.
func (s *Service) DoctorAvailability(ctx context.Context, doctorID string) ([]AvailabilitySlot, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor id is required")
	}
	var slots []AvailabilitySlot
	if err := s.gw.Get(ctx, "/appointments/doctor/"+doctorID+"/availability", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
