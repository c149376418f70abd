package devserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/datetime"
	"github.com/go-chi/chi/v5"
)

func validTime(s string) bool {
	_, err := datetime.Parse(s, time.Local)
	return err == nil
}

func validateTrip(req models.CreateTripRequest) string {
	switch {
	case strings.TrimSpace(req.DepartureCity) == "" || strings.TrimSpace(req.ArrivalCity) == "":
		return "Departure and arrival cities are required"
	case !validTime(req.DepartureTime):
		return "Invalid departure time"
	case req.ArrivalTime != "" && !validTime(req.ArrivalTime):
		return "Invalid arrival time"
	case req.TotalCapacityKg <= 0:
		return "Capacity must be positive"
	case req.PricePerKg <= 0:
		return "Price must be positive"
	}
	for _, st := range req.CollectionStops {
		if !validTime(st.StopTime) {
			return "Invalid stop time"
		}
	}
	return ""
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	uid, role := caller(r.Context())
	if role != common.RoleTransporter {
		writeError(w, http.StatusForbidden, "Only transporters can publish trips")
		return
	}

	var req models.CreateTripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TransporterID != uid {
		writeError(w, http.StatusForbidden, "Transporter mismatch")
		return
	}
	if msg := validateTrip(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	t := s.store.CreateTrip(models.Trip{
		TransporterID:       uid,
		DepartureCity:       strings.TrimSpace(req.DepartureCity),
		ArrivalCity:         strings.TrimSpace(req.ArrivalCity),
		DepartureTime:       req.DepartureTime,
		ArrivalTime:         req.ArrivalTime,
		TotalCapacityKg:     req.TotalCapacityKg,
		AvailableCapacityKg: req.TotalCapacityKg,
		PricePerKg:          req.PricePerKg,
		CollectionStops:     req.CollectionStops,
		DeliveryStops:       req.DeliveryStops,
	})
	s.log.Info(r.Context(), "trip created", "trip_id", t.ID, "transporter_id", uid)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Trip(models.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Trip not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ownTrip loads the {id} trip and checks the caller published it.
func (s *Server) ownTrip(w http.ResponseWriter, r *http.Request) (models.Trip, bool) {
	t, err := s.store.Trip(models.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Trip not found")
		return models.Trip{}, false
	}
	if uid, _ := caller(r.Context()); uid != t.TransporterID {
		writeError(w, http.StatusForbidden, "Not your trip")
		return models.Trip{}, false
	}
	return t, true
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownTrip(w, r)
	if !ok {
		return
	}
	var req models.UpdateTripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if (req.DepartureTime != nil && !validTime(*req.DepartureTime)) || (req.ArrivalTime != nil && !validTime(*req.ArrivalTime)) {
		writeError(w, http.StatusBadRequest, "Invalid time")
		return
	}
	if (req.TotalCapacityKg != nil && *req.TotalCapacityKg <= 0) || (req.PricePerKg != nil && *req.PricePerKg <= 0) {
		writeError(w, http.StatusBadRequest, "Capacity and price must be positive")
		return
	}

	updated, err := s.store.UpdateTrip(t.ID, func(t *models.Trip) {
		if req.DepartureCity != nil {
			t.DepartureCity = *req.DepartureCity
		}
		if req.ArrivalCity != nil {
			t.ArrivalCity = *req.ArrivalCity
		}
		if req.DepartureTime != nil {
			t.DepartureTime = *req.DepartureTime
		}
		if req.ArrivalTime != nil {
			t.ArrivalTime = *req.ArrivalTime
		}
		if req.TotalCapacityKg != nil {
			booked := t.TotalCapacityKg - t.AvailableCapacityKg
			t.TotalCapacityKg = *req.TotalCapacityKg
			t.AvailableCapacityKg = max(t.TotalCapacityKg-booked, 0)
		}
		if req.PricePerKg != nil {
			t.PricePerKg = *req.PricePerKg
		}
		if req.Status != nil {
			t.Status = *req.Status
		}
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "Trip not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	t, ok := s.ownTrip(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTrip(t.ID); err != nil {
		writeError(w, http.StatusNotFound, "Trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) transporterTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.TripsByTransporter(id))
}

func (s *Server) searchTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.SearchTrips(models.SearchParams{
		DepartureCity: q.Get("departureCity"),
		ArrivalCity:   q.Get("arrivalCity"),
		Date:          q.Get("date"),
	}))
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	uid, role := caller(r.Context())
	if role != common.RoleSender {
		writeError(w, http.StatusForbidden, "Only senders can book trips")
		return
	}
	var req models.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SenderID != uid {
		writeError(w, http.StatusForbidden, "Sender mismatch")
		return
	}

	b, err := s.store.CreateBooking(uid, req.TripID)
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not book trip")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// getBooking is visible to the sender and to the trip's transporter.
func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Booking(models.ID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	uid, _ := caller(r.Context())
	if b.SenderID != uid {
		t, err := s.store.Trip(b.TripID)
		if err != nil || t.TransporterID != uid {
			writeError(w, http.StatusForbidden, "Not allowed")
			return
		}
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) userBookings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok || !self(w, r, id) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.BookingsBySender(id))
}
