package admin

import (
	"context"
	"fmt"

	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/domain/records"
	"github.com/healthifyx/portal/internal/platform/session"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Users lists every account.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.gw.Get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApprovedDoctors narrows the account listing to doctors cleared to
// practice, for the record filter dropdown.
func (s *Service) ApprovedDoctors(ctx context.Context) ([]User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	doctors := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == session.RoleDoctor && u.Status == "approved" {
			doctors = append(doctors, u)
		}
	}
	return doctors, nil
}

// DeleteUser removes an account, then returns the re-fetched listing.
func (s *Service) DeleteUser(ctx context.Context, id string) ([]User, error) {
	if err := s.gw.Delete(ctx, "/admin/users/"+id, nil); err != nil {
		return nil, err
	}
	return s.Users(ctx)
}

// PendingDoctors lists doctor signups awaiting review.
func (s *Service) PendingDoctors(ctx context.Context) ([]User, error) {
	var doctors []User
	if err := s.gw.Get(ctx, "/admin/doctors/pending", &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// ApproveDoctor clears a pending doctor to practice.
func (s *Service) ApproveDoctor(ctx context.Context, id string) ([]User, error) {
	if err := s.gw.Put(ctx, "/admin/doctors/approve/"+id, nil, nil); err != nil {
		return nil, err
	}
	return s.PendingDoctors(ctx)
}

// RejectDoctor declines a pending doctor signup.
func (s *Service) RejectDoctor(ctx context.Context, id string) ([]User, error) {
	if err := s.gw.Put(ctx, "/admin/doctors/reject/"+id, nil, nil); err != nil {
		return nil, err
	}
	return s.PendingDoctors(ctx)
}

// Records lists every medical record, narrowed by the filter.
func (s *Service) Records(ctx context.Context, filter RecordFilter) ([]records.Record, error) {
	var recs []records.Record
	if err := s.gw.Get(ctx, "/admin/records", &recs); err != nil {
		return nil, err
	}
	return filter.Apply(recs), nil
}

// DeleteRecord removes a record, then returns the re-fetched filtered
// listing.
func (s *Service) DeleteRecord(ctx context.Context, id string, filter RecordFilter) ([]records.Record, error) {
	if err := s.gw.Delete(ctx, "/admin/records/"+id, nil); err != nil {
		return nil, err
	}
	return s.Records(ctx, filter)
}

// Appointments lists every appointment in the system.
func (s *Service) Appointments(ctx context.Context) ([]appointments.Appointment, error) {
	var appts []appointments.Appointment
	if err := s.gw.Get(ctx, "/admin/appointments", &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// DeleteAppointment removes an appointment, then returns the re-fetched
// listing.
func (s *Service) DeleteAppointment(ctx context.Context, id string) ([]appointments.Appointment, error) {
	if err := s.gw.Delete(ctx, "/admin/appointments/"+id, nil); err != nil {
		return nil, err
	}
	return s.Appointments(ctx)
}

// Dashboard composes the overview stats and the monthly appointment
// totals into one chart-ready payload.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var stats Stats
	if err := s.gw.Get(ctx, "/admin/stats", &stats); err != nil {
		return Dashboard{}, err
	}
	var monthly []MonthlyCount
	if err := s.gw.Get(ctx, "/admin/appointments/stats", &monthly); err != nil {
		return Dashboard{}, err
	}
	points := make([]MonthPoint, 0, len(monthly))
	for _, m := range monthly {
		points = append(points, MonthPoint{Month: m.Month, Appointments: m.Count})
	}
	return Dashboard{Stats: stats, Monthly: points}, nil
}

// EmailLogs lists the outbound email audit trail.
func (s *Service) EmailLogs(ctx context.Context) ([]EmailLog, error) {
	var logs []EmailLog
	if err := s.gw.Get(ctx, "/admin/email-logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// PrescriptionLogs lists the prescription audit trail.
func (s *Service) PrescriptionLogs(ctx context.Context) ([]PrescriptionLog, error) {
	var logs []PrescriptionLog
	if err := s.gw.Get(ctx, "/admin/prescription-logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// NearbyPharmacies lists pharmacies around a patient's saved location.
func (s *Service) NearbyPharmacies(ctx context.Context, patientID string) ([]Pharmacy, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	var pharmacies []Pharmacy
	if err := s.gw.Get(ctx, "/admin/pharmacies/"+patientID, &pharmacies); err != nil {
		return nil, err
	}
	return pharmacies, nil
}
