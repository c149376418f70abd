package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/devserver/auth"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) issue(w http.ResponseWriter, r *http.Request, status int, u models.User, msg string) {
	token, err := auth.GenerateToken(u.ID, u.Role, s.secret, s.tokenTT)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not sign in")
		return
	}
	writeJSON(w, status, models.AuthResponse{UserID: u.ID, UserRole: u.Role, Token: token, Message: msg})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Email == "" || req.Password == "" || strings.TrimSpace(req.FirstName) == "":
		writeError(w, http.StatusBadRequest, "Email, password and first name are required")
		return
	case !req.Role.Valid():
		writeError(w, http.StatusBadRequest, "Role must be SENDER or TRANSPORTER")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Password is not acceptable")
		return
	}

	u, err := s.store.CreateUser(models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Role:      req.Role,
	}, hash)
	if errors.Is(err, common.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	s.log.Info(r.Context(), "user registered", "user_id", u.ID, "role", u.Role)
	s.issue(w, r, http.StatusCreated, u, "Account created")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, hash, err := s.store.UserByEmail(req.Email)
	if err != nil || len(hash) == 0 || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.issue(w, r, http.StatusOK, u, "")
}

// googleAuth signs in an existing Google user or asks a new one to pick a role.
func (s *Server) googleAuth(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleAuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := auth.InspectGoogleIDToken(req.IDToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	u, _, err := s.store.UserByEmail(id.Email)
	if errors.Is(err, common.ErrorNotFound) {
		writeJSON(w, http.StatusOK, models.AuthResponse{
			NeedsRoleSelection: true,
			Email:              id.Email,
			FirstName:          id.FirstName,
			LastName:           id.LastName,
			ImageURL:           id.Picture,
		})
		return
	}
	s.issue(w, r, http.StatusOK, u, "")
}

func (s *Server) googleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleRegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, "Email and a valid role are required")
		return
	}

	u, err := s.store.CreateUser(models.User{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           strings.TrimSpace(req.Email),
		Role:            req.Role,
		ProfileImageURL: req.ImageURL,
	}, nil)
	if errors.Is(err, common.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not create account")
		return
	}
	s.issue(w, r, http.StatusCreated, u, "Account created")
}

// logout is stateless: tokens simply expire.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
