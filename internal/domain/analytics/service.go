package analytics

import (
	"context"
	"fmt"

	"github.com/healthifyx/portal/internal/domain/records"
)

const dateLayout = "2006-01-02"

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Insights builds the patient's own health analysis from their record
// history. Every call re-fetches; nothing is cached.
func (s *Service) Insights(ctx context.Context) (Insights, error) {
	var recs []records.Record
	if err := s.gw.Get(ctx, "/records/mine", &recs); err != nil {
		return Insights{}, err
	}
	trend := make([]TrendPoint, 0, len(recs))
	diagnoses := make([]string, 0, len(recs))
	for i, r := range recs {
		trend = append(trend, TrendPoint{
			Name:           fmt.Sprintf("Visit %d", i+1),
			Date:           r.CreatedAt.Format(dateLayout),
			DiagnosisScore: len(r.Diagnosis),
			TreatmentScore: len(r.Treatment),
		})
		diagnoses = append(diagnoses, r.Diagnosis)
	}
	return Insights{Trend: trend, DiagnosisFrequency: CountBy(diagnoses)}, nil
}

type summaryPayload struct {
	Summary string `json:"summary"`
}

// ForPatient assembles the doctor's per-patient analytics view. A missing
// saved summary is not an error; the view renders without one.
func (s *Service) ForPatient(ctx context.Context, patientID string) (PatientAnalytics, error) {
	if patientID == "" {
		return PatientAnalytics{}, fmt.Errorf("patient id is required")
	}
	var recs []records.Record
	if err := s.gw.Get(ctx, "/records/patient/"+patientID, &recs); err != nil {
		return PatientAnalytics{}, err
	}

	out := PatientAnalytics{Records: recs}
	if len(recs) > 0 {
		out.Patient = recs[0].Patient
	}
	diagnoses := make([]string, 0, len(recs))
	for _, r := range recs {
		out.Visits = append(out.Visits, VisitPoint{
			Date:            r.CreatedAt.Format(dateLayout),
			Label:           r.Diagnosis,
			TreatmentLength: len(r.Treatment),
		})
		diagnoses = append(diagnoses, r.Diagnosis)
	}
	out.DiagnosisFrequency = CountBy(diagnoses)

	var saved summaryPayload
	if err := s.gw.Get(ctx, "/records/patient/"+patientID+"/summary", &saved); err == nil {
		out.Summary = saved.Summary
	}
	return out, nil
}

// GenerateSummary asks the backend AI service for a fresh summary of the
// patient's history.
func (s *Service) GenerateSummary(ctx context.Context, patientID string) (string, error) {
	if patientID == "" {
		return "", fmt.Errorf("patient id is required")
	}
	var out summaryPayload
	if err := s.gw.Post(ctx, "/api/ai/summary/"+patientID, nil, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// SaveSummary persists a doctor-edited summary against the patient.
func (s *Service) SaveSummary(ctx context.Context, patientID, summary string) error {
	if patientID == "" {
		return fmt.Errorf("patient id is required")
	}
	if summary == "" {
		return fmt.Errorf("summary is required")
	}
	return s.gw.Post(ctx, "/records/patient/"+patientID+"/save-summary", summaryPayload{Summary: summary}, nil)
}
