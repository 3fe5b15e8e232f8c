package profile

import (
	"fmt"

	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/platform/session"
)

// Profile is the account document served by the backend. Patient and
// doctor accounts share one shape; role-specific fields are empty for
// the other role.
type Profile struct {
	ID               string                          `json:"_id"`
	Name             string                          `json:"name"`
	Email            string                          `json:"email"`
	Role             session.Role                    `json:"role"`
	Contact          string                          `json:"contact,omitempty"`
	EmergencyContact string                          `json:"emergencyContact,omitempty"`
	MedicalHistory   string                          `json:"medicalHistory,omitempty"`
	Conditions       []string                        `json:"conditions,omitempty"`
	PrescriptionFile string                          `json:"prescriptionFile,omitempty"`
	Avatar           string                          `json:"avatar,omitempty"`
	Specialty        string                          `json:"specialty,omitempty"`
	LicenseNumber    string                          `json:"licenseNumber,omitempty"`
	LicenseFile      string                          `json:"licenseFile,omitempty"`
	Status           string                          `json:"status,omitempty"`
	Availability     []appointments.AvailabilitySlot `json:"availability,omitempty"`
	Location         *Location                       `json:"location,omitempty"`
}

// Location is a map pin for home-visit scheduling.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) validate() error {
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude out of range")
	}
	if l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}
