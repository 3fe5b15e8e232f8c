package prescriptions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/healthifyx/portal/internal/domain/records"
	"github.com/healthifyx/portal/internal/platform/gateway"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error
	PutMultipart(ctx context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error
}

type Service struct {
	gw  Gateway
	now func() time.Time
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw, now: time.Now}
}

// List fetches the caller's prescriptions. The backend scopes the
// listing to the authenticated patient or doctor.
func (s *Service) List(ctx context.Context) ([]View, error) {
	var prescriptions []Prescription
	if err := s.gw.Get(ctx, "/prescriptions", &prescriptions); err != nil {
		return nil, err
	}
	return Decorate(prescriptions, s.now()), nil
}

// Patients lists the doctor's patients for the issue form.
func (s *Service) Patients(ctx context.Context) ([]records.PersonRef, error) {
	var patients []records.PersonRef
	if err := s.gw.Get(ctx, "/user/patients", &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// IssueRequest is a doctor's new prescription submission.
type IssueRequest struct {
	PatientID   string
	Notes       string
	Medications string
	IsDraft     bool
}

func (r IssueRequest) validate() error {
	if r.PatientID == "" {
		return fmt.Errorf("patient is required")
	}
	if len(parseMedications(r.Medications)) == 0 {
		return fmt.Errorf("at least one medication is required")
	}
	return nil
}

// Issue submits a new prescription, with an optional signature image,
// then returns the re-fetched list.
func (s *Service) Issue(ctx context.Context, req IssueRequest, signature *gateway.File) ([]View, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"patientId":   req.PatientID,
		"notes":       req.Notes,
		"medications": req.Medications,
		"isDraft":     strconv.FormatBool(req.IsDraft),
	}
	var files []gateway.File
	if signature != nil {
		files = append(files, *signature)
	}
	if err := s.gw.PostMultipart(ctx, "/prescriptions", fields, files, nil); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// Amend edits an existing prescription's notes and medications.
func (s *Service) Amend(ctx context.Context, id, notes, medications string, signature *gateway.File) ([]View, error) {
	if len(parseMedications(medications)) == 0 {
		return nil, fmt.Errorf("at least one medication is required")
	}
	fields := map[string]string{
		"notes":       notes,
		"medications": medications,
	}
	var files []gateway.File
	if signature != nil {
		files = append(files, *signature)
	}
	if err := s.gw.PutMultipart(ctx, "/prescriptions/"+id, fields, files, nil); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// SuggestMedications asks the backend AI service for a medication plan
// drafted from the visit notes.
func (s *Service) SuggestMedications(ctx context.Context, notes string) (string, error) {
	if notes == "" {
		return "", fmt.Errorf("notes are required")
	}
	var out struct {
		Suggestion string `json:"suggestion"`
	}
	if err := s.gw.Post(ctx, "/api/ai/medications", map[string]string{"notes": notes}, &out); err != nil {
		return "", err
	}
	return out.Suggestion, nil
}
