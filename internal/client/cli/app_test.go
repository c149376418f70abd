package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/config"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/services"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/client/trips"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/logging"
)

// inputs replaces the interactive helpers with queued answers.
type inputs struct {
	texts     []string
	passwords []string
	choices   []int
	prompts   []string
}

func stubInputs(t *testing.T, in *inputs) {
	t.Helper()
	origST, origGP, origGC := getSimpleText, getPassword, getChoice
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		in.prompts = append(in.prompts, prompt)
		if len(in.texts) == 0 {
			return "", io.EOF
		}
		v := in.texts[0]
		in.texts = in.texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		in.prompts = append(in.prompts, prompt)
		if len(in.passwords) == 0 {
			return nil, io.EOF
		}
		v := in.passwords[0]
		in.passwords = in.passwords[1:]
		return []byte(v), nil
	}
	getChoice = func(_ *bufio.Reader, prompt string, _ []string, _ io.Writer) (int, error) {
		in.prompts = append(in.prompts, prompt)
		if len(in.choices) == 0 {
			return -1, io.EOF
		}
		v := in.choices[0]
		in.choices = in.choices[1:]
		return v, nil
	}
	t.Cleanup(func() {
		getSimpleText, getPassword, getChoice = origST, origGP, origGC
	})
}

type fakeAuth struct {
	state     services.State
	loginForm services.LoginForm
	regForm   services.RegisterForm
	err       error
	loggedOut bool
}

func authed(role common.Role, id int64) services.State {
	return services.State{Kind: services.Authenticated, Session: &session.Session{Token: "t", Role: role, UserID: id}}
}

func (f *fakeAuth) Bootstrap(context.Context) services.State { return f.state }
func (f *fakeAuth) Login(_ context.Context, form services.LoginForm) (services.State, error) {
	f.loginForm = form
	if f.err != nil {
		return f.state, f.err
	}
	f.state = authed(common.RoleSender, 7)
	return f.state, nil
}
func (f *fakeAuth) Register(_ context.Context, form services.RegisterForm) (services.State, error) {
	f.regForm = form
	if f.err != nil {
		return f.state, f.err
	}
	f.state = authed(form.Role, 3)
	return f.state, nil
}
func (f *fakeAuth) GoogleSignIn(context.Context, string) (services.State, error) {
	f.state = services.State{Kind: services.PendingRoleSelection, Pending: &models.GoogleProfile{Email: "n@b.c"}}
	return f.state, nil
}
func (f *fakeAuth) CompleteRoleSelection(_ context.Context, r common.Role) (services.State, error) {
	f.state = authed(r, 11)
	return f.state, nil
}
func (f *fakeAuth) Logout(context.Context) services.State {
	f.loggedOut = true
	f.state = services.State{Kind: services.Unauthenticated}
	return f.state
}
func (f *fakeAuth) State() services.State { return f.state }
func (f *fakeAuth) Whoami(context.Context) (*session.Session, session.Claims, error) {
	return f.state.Session, session.Claims{Subject: "7"}, nil
}

type fakeTrips struct {
	created  []models.CreateTripRequest
	createFn func(models.CreateTripRequest) (models.Trip, error)
	search   []models.Trip
	upcoming []models.Trip
	past     []models.Trip
	deleted  []models.ID
}

func (f *fakeTrips) Create(ctx context.Context, w *trips.Wizard) (models.Trip, error) {
	return w.Submit(ctx, 3, func(_ context.Context, r models.CreateTripRequest) (models.Trip, error) {
		f.created = append(f.created, r)
		if f.createFn != nil {
			return f.createFn(r)
		}
		return models.Trip{ID: "new"}, nil
	})
}
func (f *fakeTrips) Search(_ context.Context, c services.SearchCriteria) ([]models.Trip, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return f.search, nil
}
func (f *fakeTrips) TransporterTrips(context.Context) ([]models.Trip, []models.Trip, error) {
	return f.upcoming, f.past, nil
}
func (f *fakeTrips) Get(_ context.Context, id models.ID) (models.Trip, error) {
	return models.Trip{ID: id, DepartureCity: "Tunis", ArrivalCity: "Paris", DepartureTime: "2025-06-01T08:00:00"}, nil
}
func (f *fakeTrips) Delete(_ context.Context, id models.ID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProfiles struct {
	phone string
	upd   models.UpdateTransporterProfileRequest
}

func (f *fakeProfiles) User(_ context.Context, id int64) (models.User, error) {
	return models.User{ID: id, FirstName: "Karim", LastName: "Ben", Email: "k@b.c"}, nil
}
func (f *fakeProfiles) UpdatePhone(_ context.Context, id int64, phone string) (models.User, error) {
	f.phone = phone
	return models.User{ID: id, Phone: phone}, nil
}
func (f *fakeProfiles) Transporter(_ context.Context, id int64) (models.TransporterProfile, error) {
	return models.TransporterProfile{UserID: id, VehicleType: "van", LicensePlate: "123 TU"}, nil
}
func (f *fakeProfiles) UpdateTransporter(_ context.Context, id int64, r models.UpdateTransporterProfileRequest) (models.TransporterProfile, error) {
	f.upd = r
	return models.TransporterProfile{UserID: id}, nil
}
func (f *fakeProfiles) UploadPhoto(context.Context, int64, string, io.Reader) (models.TransporterProfile, error) {
	return models.TransporterProfile{PhotoURL: "http://photo"}, nil
}

type fakeBookings struct{ booked []models.ID }

func (f *fakeBookings) Book(_ context.Context, id models.ID) (models.Booking, error) {
	f.booked = append(f.booked, id)
	return models.Booking{ID: "b1", TripID: id, Status: "PENDING"}, nil
}
func (f *fakeBookings) Mine(context.Context) ([]models.Booking, error) {
	return []models.Booking{{ID: "b1", TripID: "t1", Status: "PENDING"}}, nil
}
func (f *fakeBookings) Get(_ context.Context, id models.ID) (models.Booking, error) {
	return models.Booking{ID: id}, nil
}

type testApp struct {
	*App
	auth     *fakeAuth
	trips    *fakeTrips
	profiles *fakeProfiles
	bookings *fakeBookings
	out      *bytes.Buffer
}

func newTestApp(state services.State) *testApp {
	ta := &testApp{
		auth:     &fakeAuth{state: state},
		trips:    &fakeTrips{},
		profiles: &fakeProfiles{},
		bookings: &fakeBookings{},
		out:      &bytes.Buffer{},
	}
	ta.App = &App{
		config:   &config.Config{BaseURL: "http://localhost:8080"},
		auth:     ta.auth,
		trips:    ta.trips,
		profiles: ta.profiles,
		bookings: ta.bookings,
		log:      logging.Discard(),
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      ta.out,
	}
	return ta
}

var errRejected = &api.Error{Status: 401}
