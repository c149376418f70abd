package api

import (
	"context"
	"io"

	"github.com/colisroute/colis/internal/client/models"
)

// Client is the backend surface used by the services.
type Client interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	GoogleAuth(ctx context.Context, idToken string) (models.AuthResponse, error)
	GoogleRegister(ctx context.Context, req models.GoogleRegisterRequest) (models.AuthResponse, error)
	Logout(ctx context.Context) error

	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdatePhone(ctx context.Context, id int64, phone string) (models.User, error)

	GetTransporter(ctx context.Context, id int64) (models.TransporterProfile, error)
	CreateTransporter(ctx context.Context, req models.CreateTransporterProfileRequest) (models.TransporterProfile, error)
	UpdateTransporter(ctx context.Context, id int64, req models.UpdateTransporterProfileRequest) (models.TransporterProfile, error)
	UploadTransporterPhoto(ctx context.Context, id int64, filename string, r io.Reader) (models.TransporterProfile, error)

	CreateTrip(ctx context.Context, req models.CreateTripRequest) (models.Trip, error)
	GetTrip(ctx context.Context, id models.ID) (models.Trip, error)
	UpdateTrip(ctx context.Context, id models.ID, req models.UpdateTripRequest) (models.Trip, error)
	DeleteTrip(ctx context.Context, id models.ID) error
	TransporterTrips(ctx context.Context, transporterID int64) ([]models.Trip, error)
	SearchTrips(ctx context.Context, params models.SearchParams) ([]models.Trip, error)

	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.Booking, error)
	GetBooking(ctx context.Context, id models.ID) (models.Booking, error)
	UserBookings(ctx context.Context, userID int64) ([]models.Booking, error)
}

// TokenSource yields the bearer token to attach, or "" for none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }
