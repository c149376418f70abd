package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/profilecache"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/logging"
)

type StateKind int

const (
	Checking StateKind = iota
	Unauthenticated
	Authenticated
	// PendingRoleSelection: a first-time Google user who must pick a role.
	PendingRoleSelection
)

func (k StateKind) String() string {
	switch k {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case PendingRoleSelection:
		return "pending-role-selection"
	}
	return "unknown"
}

// State is the auth state machine's current value. Session is set only
// when Authenticated, Pending only when PendingRoleSelection.
type State struct {
	Kind    StateKind
	Session *session.Session
	Pending *models.GoogleProfile
}

// Path names the screen a state lands on.
type Path string

const (
	PathNone            Path = ""
	PathLogin           Path = "/(auth)/login"
	PathRoleSelection   Path = "/role-selection"
	PathSenderHome      Path = "/(sender)/search"
	PathTransporterHome Path = "/(transporter)/dashboard"
)

// Route maps a state to its screen. Checking has no screen yet.
func Route(s State) Path {
	switch s.Kind {
	case Authenticated:
		if s.Session == nil {
			return PathLogin
		}
		switch s.Session.Role {
		case common.RoleSender:
			return PathSenderHome
		case common.RoleTransporter:
			return PathTransporterHome
		}
		return PathLogin
	case PendingRoleSelection:
		return PathRoleSelection
	case Unauthenticated:
		return PathLogin
	}
	return PathNone
}

// AuthService owns the session lifecycle.
//
// Every successful transition to Authenticated persists the session before
// the in-memory state changes. Failures leave the state as it was.
type AuthService interface {
	Bootstrap(ctx context.Context) State
	Login(ctx context.Context, form LoginForm) (State, error)
	Register(ctx context.Context, form RegisterForm) (State, error)
	GoogleSignIn(ctx context.Context, idToken string) (State, error)
	CompleteRoleSelection(ctx context.Context, role common.Role) (State, error)
	Logout(ctx context.Context) State
	State() State
	Whoami(ctx context.Context) (*session.Session, session.Claims, error)
}

type authService struct {
	client api.Client
	store  session.Store
	cache  *profilecache.Cache
	log    logging.Logger

	mu    sync.Mutex
	state State
}

func NewAuthService(client api.Client, store session.Store, cache *profilecache.Cache, log logging.Logger) AuthService {
	return &authService{
		client: client,
		store:  store,
		cache:  cache,
		log:    log.With("component", "auth"),
		state:  State{Kind: Checking},
	}
}

func (a *authService) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) set(s State) State {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
	return s
}

// Bootstrap decides the landing state from the persisted session. A stored
// session with an unknown role is not trusted for routing but is left in place.
func (a *authService) Bootstrap(ctx context.Context) State {
	a.set(State{Kind: Checking})

	sess, err := a.store.Get(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot read stored session", "error", err)
		return a.set(State{Kind: Unauthenticated})
	}
	if sess == nil {
		return a.set(State{Kind: Unauthenticated})
	}
	if !sess.Role.Valid() {
		a.log.Warn(ctx, "stored session has unknown role", "role", sess.Role)
		return a.set(State{Kind: Unauthenticated})
	}

	a.log.Info(ctx, "session restored", "user_id", sess.UserID, "role", sess.Role)
	return a.set(State{Kind: Authenticated, Session: sess})
}

// establish persists resp as the session, then switches state.
func (a *authService) establish(ctx context.Context, resp models.AuthResponse) (State, error) {
	if !resp.UserRole.Valid() {
		return a.State(), fmt.Errorf("%w: unknown role %q", api.ErrMalformedResponse, resp.UserRole)
	}

	sess := session.Session{Token: resp.Token, Role: resp.UserRole, UserID: resp.UserID}
	if err := a.store.Set(ctx, sess); err != nil {
		return a.State(), fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "signed in", "user_id", sess.UserID, "role", sess.Role)
	return a.set(State{Kind: Authenticated, Session: &sess}), nil
}

func (a *authService) Login(ctx context.Context, form LoginForm) (State, error) {
	if err := form.Validate(); err != nil {
		return a.State(), err
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Email: strings.TrimSpace(form.Email), Password: form.Password})
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		return a.State(), err
	}
	return a.establish(ctx, resp)
}

// Register signs a new user up. For transporters the phone number and the
// vehicle details are saved afterwards on a best-effort basis.
func (a *authService) Register(ctx context.Context, form RegisterForm) (State, error) {
	if err := form.Validate(); err != nil {
		return a.State(), err
	}

	resp, err := a.client.SignUp(ctx, form.request())
	if err != nil {
		a.log.Warn(ctx, "signup failed", "error", err)
		return a.State(), err
	}

	st, err := a.establish(ctx, resp)
	if err != nil {
		return st, err
	}

	if form.Role == common.RoleTransporter && form.Transporter != nil {
		req := form.request()
		a.saveTransporterDetails(ctx, resp.UserID, req.FirstName+" "+req.LastName, *form.Transporter)
	}
	return st, nil
}

func (a *authService) saveTransporterDetails(ctx context.Context, userID int64, displayName string, d TransporterDetails) {
	if _, err := a.client.UpdatePhone(ctx, userID, strings.TrimSpace(d.Phone)); err != nil {
		a.log.Warn(ctx, "could not save phone", "user_id", userID, "error", err)
	}

	if _, err := a.client.CreateTransporter(ctx, models.CreateTransporterProfileRequest{DisplayName: displayName}); err != nil {
		a.log.Warn(ctx, "could not create transporter profile", "user_id", userID, "error", err)
	}

	vehicle := d.VehicleType
	plate := strings.TrimSpace(d.LicensePlate)
	upd := models.UpdateTransporterProfileRequest{VehicleType: &vehicle, LicensePlate: &plate}
	if _, err := a.client.UpdateTransporter(ctx, userID, upd); err != nil {
		a.log.Warn(ctx, "could not save vehicle details", "user_id", userID, "error", err)
	}
}

// GoogleSignIn exchanges a Google ID token. Existing users are signed in;
// new users move to PendingRoleSelection with their Google profile.
func (a *authService) GoogleSignIn(ctx context.Context, idToken string) (State, error) {
	if strings.TrimSpace(idToken) == "" {
		return a.State(), &FormError{Fields: []string{"idToken"}, Message: "No ID token received"}
	}

	resp, err := a.client.GoogleAuth(ctx, idToken)
	if err != nil {
		a.log.Warn(ctx, "google sign-in failed", "error", err)
		return a.State(), err
	}

	if resp.NeedsRoleSelection {
		p := resp.Profile()
		a.log.Info(ctx, "new google user, role selection needed", "email", p.Email)
		return a.set(State{Kind: PendingRoleSelection, Pending: &p}), nil
	}
	return a.establish(ctx, resp)
}

// CompleteRoleSelection finishes a pending Google signup with role.
func (a *authService) CompleteRoleSelection(ctx context.Context, role common.Role) (State, error) {
	cur := a.State()
	if cur.Kind != PendingRoleSelection || cur.Pending == nil {
		return cur, fmt.Errorf("%w: no pending google signup", common.ErrNoSession)
	}
	if !role.Valid() {
		return cur, &FormError{Fields: []string{"role"}, Message: "Please choose sender or transporter"}
	}

	p := cur.Pending
	resp, err := a.client.GoogleRegister(ctx, models.GoogleRegisterRequest{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		ImageURL:  p.ImageURL,
		Role:      role,
	})
	if err != nil {
		a.log.Warn(ctx, "google registration failed", "error", err)
		return cur, err
	}
	return a.establish(ctx, resp)
}

// Logout clears the session and every cached profile. Cleanup failures are
// logged; the result is always Unauthenticated.
func (a *authService) Logout(ctx context.Context) State {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "could not clear session", "error", err)
	}
	if a.cache != nil {
		if err := a.cache.Clear(ctx); err != nil {
			a.log.Error(ctx, "could not clear profile cache", "error", err)
		}
	}
	a.log.Info(ctx, "logged out")
	return a.set(State{Kind: Unauthenticated})
}

// Whoami returns the stored session with the unverified claims of its token.
func (a *authService) Whoami(ctx context.Context) (*session.Session, session.Claims, error) {
	sess, err := a.store.Get(ctx)
	if err != nil {
		return nil, session.Claims{}, err
	}
	if sess == nil {
		return nil, session.Claims{}, common.ErrNoSession
	}
	claims, err := session.Inspect(sess.Token)
	if err != nil {
		return sess, session.Claims{}, err
	}
	return sess, claims, nil
}
