package admin

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/healthifyx/portal/internal/domain/records"
	"github.com/healthifyx/portal/internal/platform/session"
)

// User is an account row in the admin console.
type User struct {
	ID        string       `json:"_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      session.Role `json:"role"`
	Specialty string       `json:"specialty,omitempty"`
	Status    string       `json:"status,omitempty"`
}

// RecordFilter narrows the admin record listing. All set criteria must
// match; an empty filter passes everything through unchanged.
type RecordFilter struct {
	DoctorID string
	Start    time.Time
	End      time.Time
}

// Empty reports whether no criteria are set.
func (f RecordFilter) Empty() bool {
	return f.DoctorID == "" && f.Start.IsZero() && f.End.IsZero()
}

// Matches applies the filter to one record. The end date is inclusive at
// day granularity: records created any time on the end date pass.
func (f RecordFilter) Matches(r records.Record) bool {
	if f.DoctorID != "" {
		if r.Doctor == nil || r.Doctor.ID != f.DoctorID {
			return false
		}
	}
	if !f.Start.IsZero() && r.CreatedAt.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && !r.CreatedAt.Before(f.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Apply filters the listing, preserving order.
func (f RecordFilter) Apply(recs []records.Record) []records.Record {
	if f.Empty() {
		return recs
	}
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// RoleCounts is the user population split used by the overview pie chart.
type RoleCounts struct {
	Patient int `json:"patient"`
	Doctor  int `json:"doctor"`
	Admin   int `json:"admin"`
}

// Stats is the backend's system overview document.
type Stats struct {
	Patients      int          `json:"patients"`
	Doctors       int          `json:"doctors"`
	Appointments  int          `json:"appointments"`
	Prescriptions int          `json:"prescriptions"`
	Records       int          `json:"records"`
	UsersPerRole  RoleCounts   `json:"usersPerRole"`
	Trends        []TrendEntry `json:"trends,omitempty"`
}

// TrendEntry is one day on the recent appointment trend list.
type TrendEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthlyCount is the backend's per-month appointment aggregate. The
// month arrives under the aggregation key.
type MonthlyCount struct {
	Month string `json:"_id"`
	Count int    `json:"count"`
}

// MonthPoint is a chart-ready monthly total.
type MonthPoint struct {
	Month        string `json:"month"`
	Appointments int    `json:"appointments"`
}

// Dashboard is the composed chart payload for the admin stats view.
type Dashboard struct {
	Stats   Stats        `json:"stats"`
	Monthly []MonthPoint `json:"monthly"`
}

// EmailLog is one entry in the outbound email audit trail.
type EmailLog struct {
	ID        string    `json:"_id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Actor tolerates both backend encodings of an audit actor: a populated
// user document or a bare id string from older entries.
type Actor struct {
	records.PersonRef
}

func (a *Actor) UnmarshalJSON(data []byte) error {
	var ref records.PersonRef
	if err := json.Unmarshal(data, &ref); err == nil {
		a.PersonRef = ref
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("actor: unsupported encoding")
	}
	a.PersonRef = records.PersonRef{ID: id}
	return nil
}

// PrescriptionLog is one entry in the prescription audit trail.
type PrescriptionLog struct {
	ID             string    `json:"_id"`
	PrescriptionID string    `json:"prescriptionId"`
	Action         string    `json:"action"`
	PerformedBy    *Actor    `json:"performedBy,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Pharmacy is a nearby pharmacy hit for a patient's saved location.
type Pharmacy struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distance,omitempty"`
}
