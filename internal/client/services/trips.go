package services

import (
	"context"
	"time"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/session"
	"github.com/colisroute/colis/internal/client/trips"
	"github.com/colisroute/colis/internal/logging"
)

type TripService interface {
	// Create submits the wizard's draft as the signed-in transporter.
	Create(ctx context.Context, w *trips.Wizard) (models.Trip, error)
	Search(ctx context.Context, c SearchCriteria) ([]models.Trip, error)
	// TransporterTrips lists the signed-in transporter's trips split into
	// upcoming (soonest first) and past.
	TransporterTrips(ctx context.Context) (upcoming, past []models.Trip, err error)
	Get(ctx context.Context, id models.ID) (models.Trip, error)
	Delete(ctx context.Context, id models.ID) error
}

type tripService struct {
	client api.Client
	store  session.Store
	log    logging.Logger
	now    func() time.Time
}

func NewTripService(client api.Client, store session.Store, log logging.Logger) TripService {
	return &tripService{client: client, store: store, log: log.With("component", "trips"), now: time.Now}
}

func (s *tripService) userID(ctx context.Context) (int64, error) {
	sess, err := s.store.Get(ctx)
	if err != nil {
		return 0, err
	}
	if sess == nil || sess.UserID <= 0 {
		return 0, trips.ErrNoTransporter
	}
	return sess.UserID, nil
}

func (s *tripService) Create(ctx context.Context, w *trips.Wizard) (models.Trip, error) {
	// Field errors come before a missing session.
	if _, _, err := w.Draft.ValidateForSubmit(); err != nil {
		return models.Trip{}, err
	}
	id, err := s.userID(ctx)
	if err != nil {
		return models.Trip{}, err
	}

	trip, err := w.Submit(ctx, id, s.client.CreateTrip)
	if err != nil {
		s.log.Warn(ctx, "trip creation failed", "error", err)
		return models.Trip{}, err
	}
	s.log.Info(ctx, "trip created", "trip_id", trip.ID)
	return trip, nil
}

func (s *tripService) Search(ctx context.Context, c SearchCriteria) ([]models.Trip, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.client.SearchTrips(ctx, c.Params())
}

func (s *tripService) TransporterTrips(ctx context.Context) ([]models.Trip, []models.Trip, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.client.TransporterTrips(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	upcoming, past := trips.Partition(all, s.now())
	return upcoming, past, nil
}

func (s *tripService) Get(ctx context.Context, id models.ID) (models.Trip, error) {
	return s.client.GetTrip(ctx, id)
}

func (s *tripService) Delete(ctx context.Context, id models.ID) error {
	return s.client.DeleteTrip(ctx, id)
}
