package records

import "time"

// PersonRef is the doctor/patient summary nested in server records. The
// portal reads it, never mutates it.
type PersonRef struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

// Record is the display projection of a backend medical record. The backend
// is the sole source of truth; the portal holds a transient list per request
// and replaces it wholesale on every fetch.
type Record struct {
	ID         string     `json:"_id"`
	Diagnosis  string     `json:"diagnosis"`
	Treatment  string     `json:"treatment"`
	DoctorNote string     `json:"doctorNote,omitempty"`
	Report     string     `json:"report,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Doctor     *PersonRef `json:"doctor,omitempty"`
	Patient    *PersonRef `json:"patient,omitempty"`
}

// View is a record decorated with the display transforms: diagnosis tags and
// the inferred severity badge.
type View struct {
	Record
	Tags     []string       `json:"tags"`
	Severity *SeverityLevel `json:"severity,omitempty"`
}

// Decorate projects raw records into display-ready views.
func Decorate(recs []Record) []View {
	views := make([]View, 0, len(recs))
	for _, r := range recs {
		v := View{Record: r, Tags: Tags(r.Diagnosis)}
		if level, ok := Severity(r.Diagnosis); ok {
			v.Severity = &level
		}
		views = append(views, v)
	}
	return views
}
