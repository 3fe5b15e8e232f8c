package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthifyx/portal/internal/platform/session"
)

// Gateway is the slice of the backend client this domain consumes.
type Gateway interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}

type Service struct {
	gw    Gateway
	store session.Store
}

func NewService(gw Gateway, store session.Store) *Service {
	return &Service{gw: gw, store: store}
}

// Credentials is an email/password login submission.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) validate() error {
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Established is a freshly created session: the opaque ID handed to the
// client and the role it authenticates as.
type Established struct {
	ID     string       `json:"-"`
	Role   session.Role `json:"role"`
	UserID string       `json:"userId"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID   string       `json:"_id"`
		Role session.Role `json:"role"`
	} `json:"user"`
}

// establish persists a complete session triple under a fresh ID. A
// partial triple never reaches the store.
func (s *Service) establish(ctx context.Context, sess session.Session) (Established, error) {
	if !sess.Role.Valid() {
		return Established{}, fmt.Errorf("backend returned unknown role %q", sess.Role)
	}
	id := uuid.NewString()
	if err := s.store.Set(ctx, id, sess); err != nil {
		return Established{}, err
	}
	return Established{ID: id, Role: sess.Role, UserID: sess.UserID}, nil
}

// Login exchanges credentials for a backend token and opens a session.
func (s *Service) Login(ctx context.Context, creds Credentials) (Established, error) {
	if err := creds.validate(); err != nil {
		return Established{}, err
	}
	var res loginResponse
	if err := s.gw.Post(ctx, "/auth/login", creds, &res); err != nil {
		return Established{}, err
	}
	return s.establish(ctx, session.Session{
		Token:  res.Token,
		Role:   res.User.Role,
		UserID: res.User.ID,
	})
}

// Registration is a new account submission.
type Registration struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     session.Role `json:"role"`
}

func (r Registration) validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if !r.Role.Valid() {
		return fmt.Errorf("unknown role %q", r.Role)
	}
	return nil
}

// Register creates the account, then logs straight in so the client
// lands with an open session.
func (s *Service) Register(ctx context.Context, reg Registration) (Established, error) {
	if err := reg.validate(); err != nil {
		return Established{}, err
	}
	if err := s.gw.Post(ctx, "/auth/register", reg, nil); err != nil {
		return Established{}, err
	}
	return s.Login(ctx, Credentials{Email: reg.Email, Password: reg.Password})
}

// GoogleSignup is a federated signup derived from a Google identity.
type GoogleSignup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	GoogleID string `json:"googleId"`
}

func (g GoogleSignup) validate() error {
	if g.Email == "" {
		return fmt.Errorf("email is required")
	}
	if g.GoogleID == "" {
		return fmt.Errorf("google id is required")
	}
	return nil
}

// GoogleRegister signs up via Google identity. The backend returns only
// a token, so the account document is fetched with it to complete the
// session triple before anything is stored.
func (s *Service) GoogleRegister(ctx context.Context, signup GoogleSignup) (Established, error) {
	if err := signup.validate(); err != nil {
		return Established{}, err
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := s.gw.Post(ctx, "/auth/google-register", signup, &res); err != nil {
		return Established{}, err
	}

	authed := session.WithSession(ctx, session.Session{Token: res.Token})
	var me struct {
		ID   string       `json:"_id"`
		Role session.Role `json:"role"`
	}
	if err := s.gw.Get(authed, "/user/me", &me); err != nil {
		return Established{}, err
	}
	return s.establish(ctx, session.Session{
		Token:  res.Token,
		Role:   me.Role,
		UserID: me.ID,
	})
}

// ForgotPassword asks the backend to email a reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	return s.gw.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// Logout drops the session. Clearing an already absent session succeeds.
func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.store.Clear(ctx, id)
}
