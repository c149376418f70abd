package devserver

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/datetime"
	"github.com/google/uuid"
)

type userRecord struct {
	models.User
	PasswordHash []byte
}

// StoredPhoto is an uploaded transporter photo.
type StoredPhoto struct {
	ContentType string
	Data        []byte
}

// Store keeps every backend entity in memory. All methods are safe for
// concurrent use and return copies.
type Store struct {
	mu sync.RWMutex

	nextUserID   int64
	users        map[int64]*userRecord
	usersByEmail map[string]int64
	transporters map[int64]models.TransporterProfile
	photos       map[int64]StoredPhoto
	trips        map[models.ID]models.Trip
	bookings     map[models.ID]models.Booking
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        map[int64]*userRecord{},
		usersByEmail: map[string]int64{},
		transporters: map[int64]models.TransporterProfile{},
		photos:       map[int64]StoredPhoto{},
		trips:        map[models.ID]models.Trip{},
		bookings:     map[models.ID]models.Booking{},
		now:          time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(u models.User, passwordHash []byte) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := s.usersByEmail[key]; ok {
		return models.User{}, common.ErrAlreadyExists
	}
	s.nextUserID++
	u.ID = s.nextUserID
	s.users[u.ID] = &userRecord{User: u, PasswordHash: passwordHash}
	s.usersByEmail[key] = u.ID
	return u, nil
}

// UserByEmail returns the user with its password hash.
func (s *Store) UserByEmail(email string) (models.User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[emailKey(email)]
	if !ok {
		return models.User{}, nil, common.ErrorNotFound
	}
	r := s.users[id]
	return r.User, r.PasswordHash, nil
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return r.User, nil
}

func (s *Store) SetPhone(id int64, phone string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	r.Phone = phone
	return r.User, nil
}

// CreateTransporter creates the profile of userID or returns the existing one.
func (s *Store) CreateTransporter(userID int64, req models.CreateTransporterProfileRequest) models.TransporterProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.transporters[userID]; ok {
		return p
	}
	p := models.TransporterProfile{
		UserID:       userID,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		PricingPerKg: req.PricingPerKg,
	}
	s.transporters[userID] = p
	return p
}

func (s *Store) Transporter(userID int64) (models.TransporterProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.transporters[userID]
	if !ok {
		return models.TransporterProfile{}, common.ErrorNotFound
	}
	return p, nil
}

// UpdateTransporter applies the non-nil fields of req, creating the profile
// if needed.
func (s *Store) UpdateTransporter(userID int64, req models.UpdateTransporterProfileRequest) models.TransporterProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.transporters[userID]
	if !ok {
		p = models.TransporterProfile{UserID: userID}
	}
	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.VehicleType != nil {
		p.VehicleType = *req.VehicleType
	}
	if req.LicensePlate != nil {
		p.LicensePlate = *req.LicensePlate
	}
	if req.PricingPerKg != nil {
		p.PricingPerKg = *req.PricingPerKg
	}
	s.transporters[userID] = p
	return p
}

func (s *Store) SetPhoto(userID int64, contentType string, data []byte, url string) (models.TransporterProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.transporters[userID]
	if !ok {
		return models.TransporterProfile{}, common.ErrorNotFound
	}
	s.photos[userID] = StoredPhoto{ContentType: contentType, Data: data}
	p.PhotoURL = url
	s.transporters[userID] = p
	return p, nil
}

func (s *Store) Photo(userID int64) (StoredPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ph, ok := s.photos[userID]
	if !ok {
		return StoredPhoto{}, common.ErrorNotFound
	}
	return ph, nil
}

func (s *Store) CreateTrip(t models.Trip) models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = models.ID(uuid.NewString())
	if t.Status == "" {
		t.Status = "SCHEDULED"
	}
	s.trips[t.ID] = t
	return t
}

func (s *Store) Trip(id models.ID) (models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trips[id]
	if !ok {
		return models.Trip{}, common.ErrorNotFound
	}
	return t, nil
}

func (s *Store) UpdateTrip(id models.ID, fn func(*models.Trip)) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trips[id]
	if !ok {
		return models.Trip{}, common.ErrorNotFound
	}
	fn(&t)
	s.trips[id] = t
	return t, nil
}

func (s *Store) DeleteTrip(id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.trips, id)
	return nil
}

// sortedTrips returns the trips matching keep, by departure time then id.
func (s *Store) sortedTrips(keep func(models.Trip) bool) []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Trip{}
	for _, t := range s.trips {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Trip) int {
		if c := strings.Compare(a.DepartureTime, b.DepartureTime); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return out
}

func (s *Store) TripsByTransporter(transporterID int64) []models.Trip {
	return s.sortedTrips(func(t models.Trip) bool { return t.TransporterID == transporterID })
}

// SearchTrips matches cities case-insensitively and date on the departure
// day. Empty criteria match everything.
func (s *Store) SearchTrips(p models.SearchParams) []models.Trip {
	return s.sortedTrips(func(t models.Trip) bool {
		if p.DepartureCity != "" && !strings.EqualFold(t.DepartureCity, p.DepartureCity) {
			return false
		}
		if p.ArrivalCity != "" && !strings.EqualFold(t.ArrivalCity, p.ArrivalCity) {
			return false
		}
		if p.Date != "" && !strings.HasPrefix(t.DepartureTime, p.Date) {
			return false
		}
		return true
	})
}

func (s *Store) CreateBooking(senderID int64, tripID models.ID) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[tripID]; !ok {
		return models.Booking{}, fmt.Errorf("trip %s: %w", tripID, common.ErrorNotFound)
	}
	b := models.Booking{
		ID:        models.ID(uuid.NewString()),
		SenderID:  senderID,
		TripID:    tripID,
		Status:    "PENDING",
		CreatedAt: s.now().Format(datetime.Layout),
	}
	s.bookings[b.ID] = b
	return b, nil
}

func (s *Store) Booking(id models.ID) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, common.ErrorNotFound
	}
	return b, nil
}

func (s *Store) BookingsBySender(senderID int64) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.SenderID == senderID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b models.Booking) int {
		if c := strings.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return out
}
