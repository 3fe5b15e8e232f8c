package analytics

import (
	"github.com/healthifyx/portal/internal/domain/records"
)

// TrendPoint is one visit on the patient health trend chart. Scores are
// text-length proxies until the upstream service exposes coded metrics.
type TrendPoint struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	DiagnosisScore int    `json:"diagnosisScore"`
	TreatmentScore int    `json:"treatmentScore"`
}

// Insights is the chart-ready payload for a patient's own analysis view.
type Insights struct {
	Trend              []TrendPoint `json:"trend"`
	DiagnosisFrequency []Bucket     `json:"diagnosisFrequency"`
}

// VisitPoint is one record on the doctor's per-patient timeline.
type VisitPoint struct {
	Date            string `json:"date"`
	Label           string `json:"label"`
	TreatmentLength int    `json:"treatmentLength"`
}

// PatientAnalytics collects everything the doctor's per-patient view
// needs in a single response.
type PatientAnalytics struct {
	Patient            *records.PersonRef `json:"patient"`
	Records            []records.Record   `json:"records"`
	Visits             []VisitPoint       `json:"visits"`
	DiagnosisFrequency []Bucket           `json:"diagnosisFrequency"`
	Summary            string             `json:"summary"`
}
