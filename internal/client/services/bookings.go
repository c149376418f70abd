package services

import (
	"context"
	"errors"
	"strings"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/logging"
)

// BookingService lets a signed-in sender book a trip and list their bookings.
type BookingService interface {
	Book(ctx context.Context, tripID models.ID) (models.Booking, error)
	Mine(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id models.ID) (models.Booking, error)
}

type bookingService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
}

func NewBookingService(client api.Client, store session.Store, log logging.Logger) BookingService {
	return &bookingService{client: client, store: store, log: log.With("component", "bookings")}
}

func (s *bookingService) senderID(ctx context.Context) (int64, error) {
	sess, err := s.store.Get(ctx)
	if err != nil {
		return 0, err
	}
	if sess == nil || sess.UserID <= 0 {
		return 0, common.ErrNoSession
	}
	if sess.Role != common.RoleSender {
		return 0, errors.New("only senders can book trips")
	}
	return sess.UserID, nil
}

func (s *bookingService) Book(ctx context.Context, tripID models.ID) (models.Booking, error) {
	if strings.TrimSpace(string(tripID)) == "" {
		return models.Booking{}, &FormError{Fields: []string{"tripId"}, Message: "Please choose a trip"}
	}
	id, err := s.senderID(ctx)
	if err != nil {
		return models.Booking{}, err
	}

	b, err := s.client.CreateBooking(ctx, models.CreateBookingRequest{SenderID: id, TripID: tripID})
	if err != nil {
		s.log.Warn(ctx, "booking failed", "trip_id", tripID, "error", err)
		return models.Booking{}, err
	}
	s.log.Info(ctx, "trip booked", "trip_id", tripID, "booking_id", b.ID)
	return b, nil
}

func (s *bookingService) Mine(ctx context.Context) ([]models.Booking, error) {
	id, err := s.senderID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.UserBookings(ctx, id)
}

func (s *bookingService) Get(ctx context.Context, id models.ID) (models.Booking, error) {
	return s.client.GetBooking(ctx, id)
}
