package records

import (
	"context"
	"fmt"

	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/session"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// listPath picks the backend listing for the caller's role: patients see
// their own records, doctors the records filed against them.
func listPath(role session.Role) (string, error) {
	switch role {
	case session.RolePatient:
		return "/records/mine", nil
	case session.RoleDoctor:
		return "/records/doctor/mine", nil
	default:
		return "", fmt.Errorf("no record listing for role %q", role)
	}
}

// ListMine fetches the caller's records and decorates them with tags and
// severity.
func (s *Service) ListMine(ctx context.Context) ([]View, error) {
	path, err := listPath(session.FromContext(ctx).Role)
	if err != nil {
		return nil, err
	}
	var recs []Record
	if err := s.gw.Get(ctx, path, &recs); err != nil {
		return nil, err
	}
	return Decorate(recs), nil
}

// AddRequest is a patient's new record submission.
type AddRequest struct {
	Diagnosis string
	Treatment string
	DoctorID  string
}

func (r AddRequest) validate() error {
	if r.Diagnosis == "" {
		return fmt.Errorf("diagnosis is required")
	}
	if r.Treatment == "" {
		return fmt.Errorf("treatment is required")
	}
	if r.DoctorID == "" {
		return fmt.Errorf("doctor is required")
	}
	return nil
}

// Add submits a new record, with an optional report attachment, then returns
// the re-fetched list. State is never mutated locally; the backend response
// to the follow-up fetch is the only truth.
func (s *Service) Add(ctx context.Context, req AddRequest, report *gateway.File) ([]View, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"diagnosis": req.Diagnosis,
		"treatment": req.Treatment,
		"doctor":    req.DoctorID,
	}
	var files []gateway.File
	if report != nil {
		files = append(files, *report)
	}
	if err := s.gw.PostMultipart(ctx, "/records", fields, files, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// UpdateRequest edits a record's diagnosis and treatment.
type UpdateRequest struct {
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) ([]View, error) {
	if req.Diagnosis == "" && req.Treatment == "" {
		return nil, fmt.Errorf("nothing to update")
	}
	if err := s.gw.Patch(ctx, "/records/"+id, req, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) ([]View, error) {
	if err := s.gw.Delete(ctx, "/records/"+id, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}

// Respond attaches a doctor's note to a record.
func (s *Service) Respond(ctx context.Context, id, note string) ([]View, error) {
	if note == "" {
		return nil, fmt.Errorf("note is required")
	}
	body := map[string]string{"doctorNote": note}
	if err := s.gw.Patch(ctx, "/records/respond/"+id, body, nil); err != nil {
		return nil, err
	}
	return s.ListMine(ctx)
}
