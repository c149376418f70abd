package devserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
)

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	u, err := s.store.User(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updatePhone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok || !self(w, r, id) {
		return
	}
	var req models.UpdatePhoneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		writeError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	u, err := s.store.SetPhone(id, phone)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createTransporter(w http.ResponseWriter, r *http.Request) {
	uid, role := caller(r.Context())
	if role != common.RoleTransporter {
		writeError(w, http.StatusForbidden, "Only transporters have a transporter profile")
		return
	}
	var req models.CreateTransporterProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateTransporter(uid, req))
}

func (s *Server) getTransporter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	p, err := s.store.Transporter(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Transporter not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateTransporter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok || !self(w, r, id) {
		return
	}
	var req models.UpdateTransporterProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.store.UpdateTransporter(id, req))
}

// uploadPhoto accepts a multipart image in the "file" field.
func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok || !self(w, r, id) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUp)
	f, _, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "Photo is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read file")
		return
	}
	ct := http.DetectContentType(buf.Bytes())
	if !strings.HasPrefix(ct, "image/") {
		writeError(w, http.StatusUnsupportedMediaType, "File is not an image")
		return
	}

	url := fmt.Sprintf("http://%s%s", r.Host, api.PathTransporterPhoto(id))
	p, err := s.store.SetPhoto(id, ct, buf.Bytes(), url)
	if err != nil {
		writeError(w, http.StatusNotFound, "Transporter not found")
		return
	}
	s.log.Info(r.Context(), "photo uploaded", "user_id", id, "bytes", buf.Len())
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) getPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUserID(w, r)
	if !ok {
		return
	}
	ph, err := s.store.Photo(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}
	w.Header().Set("Content-Type", ph.ContentType)
	_, _ = w.Write(ph.Data)
}
