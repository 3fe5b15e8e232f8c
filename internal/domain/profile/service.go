package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthifyx/portal/internal/domain/appointments"
	"github.com/healthifyx/portal/internal/platform/gateway"
	"github.com/healthifyx/portal/internal/platform/session"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	PutMultipart(ctx context.Context, path string, fields map[string]string, files []gateway.File, out interface{}) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Me fetches the caller's account document.
func (s *Service) Me(ctx context.Context) (Profile, error) {
	var p Profile
	if err := s.gw.Get(ctx, "/user/me", &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Update pushes edited profile fields, with optional attachments, then
// returns the re-fetched document. Empty fields are omitted so the
// backend keeps its current values.
func (s *Service) Update(ctx context.Context, fields map[string]string, files []gateway.File) (Profile, error) {
	payload := make(map[string]string, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(v) != "" {
			payload[k] = v
		}
	}
	if len(payload) == 0 && len(files) == 0 {
		return Profile{}, fmt.Errorf("nothing to update")
	}
	if err := s.gw.PutMultipart(ctx, "/user/me", payload, files, nil); err != nil {
		return Profile{}, err
	}
	return s.Me(ctx)
}

// SetAvailability replaces the doctor's weekly availability windows.
// Every slot needs a day and both ends of the window.
func (s *Service) SetAvailability(ctx context.Context, slots []appointments.AvailabilitySlot) (Profile, error) {
	for i, slot := range slots {
		if slot.Day == "" || slot.From == "" || slot.To == "" {
			return Profile{}, fmt.Errorf("availability slot %d is incomplete", i+1)
		}
	}
	body := map[string]interface{}{"availability": slots}
	if err := s.gw.Put(ctx, "/user/availability", body, nil); err != nil {
		return Profile{}, err
	}
	return s.Me(ctx)
}

// SetLocation pins the caller's home-visit location.
func (s *Service) SetLocation(ctx context.Context, loc Location) error {
	if err := loc.validate(); err != nil {
		return err
	}
	userID := session.FromContext(ctx).UserID
	if userID == "" {
		return fmt.Errorf("no authenticated user")
	}
	return s.gw.Patch(ctx, "/user/"+userID+"/location", loc, nil)
}
