package services

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/migrations"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/profilecache"
	"github.com/colisroute/colis/internal/client/repositories/kv"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type deps struct {
	repo  *kv.SQLiteRepository
	store session.Store
	cache *profilecache.Cache
}

func setupDeps(t *testing.T) deps {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))

	repo := kv.NewSQLiteRepository(db)
	return deps{
		repo:  repo,
		store: session.NewPlainStore(repo),
		cache: profilecache.New(repo, logging.Discard()),
	}
}

// fakeClient implements api.Client; unset funcs panic through the nil embedded interface.
type fakeClient struct {
	api.Client

	LoginFn             func(models.LoginRequest) (models.AuthResponse, error)
	SignUpFn            func(models.SignUpRequest) (models.AuthResponse, error)
	GoogleAuthFn        func(string) (models.AuthResponse, error)
	GoogleRegisterFn    func(models.GoogleRegisterRequest) (models.AuthResponse, error)
	GetUserFn           func(int64) (models.User, error)
	UpdatePhoneFn       func(int64, string) (models.User, error)
	CreateTransporterFn func(models.CreateTransporterProfileRequest) (models.TransporterProfile, error)
	UpdateTransporterFn func(int64, models.UpdateTransporterProfileRequest) (models.TransporterProfile, error)
	UploadPhotoFn       func(int64, string, []byte) (models.TransporterProfile, error)
	CreateTripFn        func(models.CreateTripRequest) (models.Trip, error)
	TransporterTripsFn  func(int64) ([]models.Trip, error)
	SearchTripsFn       func(models.SearchParams) ([]models.Trip, error)
	CreateBookingFn     func(models.CreateBookingRequest) (models.Booking, error)
	UserBookingsFn      func(int64) ([]models.Booking, error)

	calls map[string]int
}

func (f *fakeClient) hit(name string) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeClient) Login(_ context.Context, r models.LoginRequest) (models.AuthResponse, error) {
	f.hit("Login")
	return f.LoginFn(r)
}

func (f *fakeClient) SignUp(_ context.Context, r models.SignUpRequest) (models.AuthResponse, error) {
	f.hit("SignUp")
	return f.SignUpFn(r)
}

func (f *fakeClient) GoogleAuth(_ context.Context, tok string) (models.AuthResponse, error) {
	f.hit("GoogleAuth")
	return f.GoogleAuthFn(tok)
}

func (f *fakeClient) GoogleRegister(_ context.Context, r models.GoogleRegisterRequest) (models.AuthResponse, error) {
	f.hit("GoogleRegister")
	return f.GoogleRegisterFn(r)
}

func (f *fakeClient) GetUser(_ context.Context, id int64) (models.User, error) {
	f.hit("GetUser")
	return f.GetUserFn(id)
}

func (f *fakeClient) UpdatePhone(_ context.Context, id int64, phone string) (models.User, error) {
	f.hit("UpdatePhone")
	return f.UpdatePhoneFn(id, phone)
}

func (f *fakeClient) CreateTransporter(_ context.Context, r models.CreateTransporterProfileRequest) (models.TransporterProfile, error) {
	f.hit("CreateTransporter")
	return f.CreateTransporterFn(r)
}

func (f *fakeClient) UpdateTransporter(_ context.Context, id int64, r models.UpdateTransporterProfileRequest) (models.TransporterProfile, error) {
	f.hit("UpdateTransporter")
	return f.UpdateTransporterFn(id, r)
}

func (f *fakeClient) UploadTransporterPhoto(_ context.Context, id int64, name string, r io.Reader) (models.TransporterProfile, error) {
	f.hit("UploadTransporterPhoto")
	b, err := io.ReadAll(r)
	if err != nil {
		return models.TransporterProfile{}, err
	}
	return f.UploadPhotoFn(id, name, b)
}

func (f *fakeClient) CreateTrip(_ context.Context, r models.CreateTripRequest) (models.Trip, error) {
	f.hit("CreateTrip")
	return f.CreateTripFn(r)
}

func (f *fakeClient) TransporterTrips(_ context.Context, id int64) ([]models.Trip, error) {
	f.hit("TransporterTrips")
	return f.TransporterTripsFn(id)
}

func (f *fakeClient) SearchTrips(_ context.Context, p models.SearchParams) ([]models.Trip, error) {
	f.hit("SearchTrips")
	return f.SearchTripsFn(p)
}

func (f *fakeClient) CreateBooking(_ context.Context, r models.CreateBookingRequest) (models.Booking, error) {
	f.hit("CreateBooking")
	return f.CreateBookingFn(r)
}

func (f *fakeClient) UserBookings(_ context.Context, id int64) ([]models.Booking, error) {
	f.hit("UserBookings")
	return f.UserBookingsFn(id)
}
