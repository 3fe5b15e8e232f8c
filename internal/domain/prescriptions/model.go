package prescriptions

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/healthifyx/portal/internal/domain/records"
)

// validityDays is how long a prescription stays fillable after issue.
const validityDays = 30

// Medication is one line item on a prescription.
type Medication struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
}

// Medications tolerates both backend encodings: a structured array or a
// free-text string from older entries.
type Medications []Medication

func (m *Medications) UnmarshalJSON(data []byte) error {
	var list []Medication
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("medications: unsupported encoding")
	}
	*m = parseMedications(text)
	return nil
}

// parseMedications splits free text on commas and newlines, one
// medication per segment.
func parseMedications(text string) Medications {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make(Medications, 0, len(segments))
	for _, seg := range segments {
		if name := strings.TrimSpace(seg); name != "" {
			out = append(out, Medication{Name: name})
		}
	}
	return out
}

// Prescription is the display projection of a backend prescription.
type Prescription struct {
	ID          string             `json:"_id"`
	Notes       string             `json:"notes,omitempty"`
	Medications Medications        `json:"medications"`
	IsDraft     bool               `json:"isDraft"`
	PDFURL      string             `json:"pdfUrl,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	Doctor      *records.PersonRef `json:"doctor,omitempty"`
	Patient     *records.PersonRef `json:"patient,omitempty"`
}

// View adds the expiry countdown displayed next to each prescription.
type View struct {
	Prescription
	DaysLeft int  `json:"daysLeft"`
	Expired  bool `json:"expired"`
}

// Decorate computes the validity window for each prescription relative
// to now. Partial days count as a full day, so anything still valid
// shows at least "1 day left".
func Decorate(prescriptions []Prescription, now time.Time) []View {
	views := make([]View, 0, len(prescriptions))
	for _, p := range prescriptions {
		expiry := p.CreatedAt.AddDate(0, 0, validityDays)
		left := int(math.Ceil(expiry.Sub(now).Hours() / 24))
		v := View{Prescription: p}
		if left > 0 {
			v.DaysLeft = left
		} else {
			v.Expired = true
		}
		views = append(views, v)
	}
	return views
}
