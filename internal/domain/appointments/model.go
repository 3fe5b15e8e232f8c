package appointments

import (
	"fmt"
	"time"

	"github.com/healthifyx/portal/internal/domain/records"
)

// Status is the lifecycle state of an appointment as reported by the
// backend.
type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// Appointment is the display projection of a backend appointment.
type Appointment struct {
	ID         string             `json:"_id"`
	Date       time.Time          `json:"date"`
	Reason     string             `json:"reason,omitempty"`
	Status     Status             `json:"status"`
	Attachment string             `json:"attachment,omitempty"`
	Doctor     *records.PersonRef `json:"doctor,omitempty"`
	Patient    *records.PersonRef `json:"patient,omitempty"`
}

// CanConfirm reports whether a confirm action is offered for the status.
// Only pending appointments can be confirmed.
func (s Status) CanConfirm() bool { return s == StatusPending }

// CanCancel reports whether a cancel action is offered for the status.
func (s Status) CanCancel() bool { return s == StatusPending }

// CanReschedule reports whether a reschedule action is offered. Confirmed
// appointments can still be moved; cancelled ones are final.
func (s Status) CanReschedule() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Badge maps a status to its display tone, matching the list view's
// colour scheme.
func (s Status) Badge() string {
	switch s {
	case StatusConfirmed:
		return "success"
	case StatusCancelled:
		return "danger"
	default:
		return "secondary"
	}
}

func transitionError(s Status, action string) error {
	return fmt.Errorf("cannot %s appointment in status %q", action, s)
}

// AvailabilitySlot is one weekly availability window a doctor publishes.
type AvailabilitySlot struct {
	Day  string `json:"day"`
	From string `json:"from"`
	To   string `json:"to"`
}
