// Package devserver is an in-memory implementation of the Colis REST API.
// It lets the terminal client run end to end without the real backend.
package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/devserver/config"
	"github.com/colisroute/colis/internal/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	store   *Store
	secret  []byte
	tokenTT time.Duration
	maxUp   int64
	origins []string
	limiter *ipLimiter
	log     logging.Logger
}

func NewServer(c *config.Config, store *Store, log logging.Logger) *Server {
	s := &Server{
		store:   store,
		secret:  []byte(c.SecretKey),
		tokenTT: c.TokenValidity,
		maxUp:   c.MaxUploadBytes,
		origins: c.AllowedOrigins,
		log:     log,
	}
	if c.AuthRatePerMinute > 0 {
		s.limiter = newIPLimiter(c.AuthRatePerMinute)
	}
	return s
}

// Router mounts every endpoint. Auth routes are throttled per IP; search and
// photo downloads are public; everything else needs a bearer token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(s.origins))

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.limit)
		r.Post(api.PathSignUp, s.signUp)
		r.Post(api.PathLogin, s.login)
		r.Post(api.PathGoogleAuth, s.googleAuth)
		r.Post(api.PathGoogleRegister, s.googleRegister)
	})

	r.Get(api.PathTripSearch, s.searchTrips)
	r.Get(api.PathTransporters+"/{id}/photo", s.getPhoto)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(s.secret))

		r.Post(api.PathLogout, s.logout)

		r.Get("/users/{id}", s.getUser)
		r.Put("/users/{id}/phone", s.updatePhone)

		r.Post(api.PathTransporters, s.createTransporter)
		r.Get(api.PathTransporters+"/{id}", s.getTransporter)
		r.Put(api.PathTransporters+"/{id}", s.updateTransporter)
		r.Post(api.PathTransporters+"/{id}/photo", s.uploadPhoto)

		r.Post(api.PathTrips, s.createTrip)
		r.Get(api.PathTrips+"/transporter/{id}", s.transporterTrips)
		r.Get(api.PathTrips+"/{id}", s.getTrip)
		r.Put(api.PathTrips+"/{id}", s.updateTrip)
		r.Delete(api.PathTrips+"/{id}", s.deleteTrip)

		r.Post(api.PathBookings, s.createBooking)
		r.Get(api.PathBookings+"/user/{id}", s.userBookings)
		r.Get(api.PathBookings+"/{id}", s.getBooking)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	return r
}

// pathUserID parses the {id} URL parameter as a user id.
func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// self rejects requests acting on another user's resources.
func self(w http.ResponseWriter, r *http.Request, id int64) bool {
	if uid, _ := caller(r.Context()); uid != id {
		writeError(w, http.StatusForbidden, "Not allowed")
		return false
	}
	return true
}
