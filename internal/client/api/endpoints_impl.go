package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/netx"
)

var _ Client = (*HTTPClient)(nil)

func requireToken(r models.AuthResponse) (models.AuthResponse, error) {
	if r.Token == "" {
		return r, malformed("no token returned")
	}
	return r, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, PathSignUp, req, &out); err != nil {
		return out, err
	}
	return requireToken(out)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, PathLogin, req, &out); err != nil {
		return out, err
	}
	return requireToken(out)
}

// GoogleAuth exchanges a Google ID token. A response flagged
// NeedsRoleSelection legitimately carries no token.
func (c *HTTPClient) GoogleAuth(ctx context.Context, idToken string) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, PathGoogleAuth, models.GoogleAuthRequest{IDToken: idToken}, &out); err != nil {
		return out, err
	}
	if out.NeedsRoleSelection {
		if out.Email == "" {
			return out, malformed("role selection requested without an email")
		}
		return out, nil
	}
	return requireToken(out)
}

func (c *HTTPClient) GoogleRegister(ctx context.Context, req models.GoogleRegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, PathGoogleRegister, req, &out); err != nil {
		return out, err
	}
	return requireToken(out)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, PathLogout, nil, nil)
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var out models.User
	err := c.doJSON(ctx, http.MethodGet, PathUser(id), nil, &out)
	return out, err
}

func (c *HTTPClient) UpdatePhone(ctx context.Context, id int64, phone string) (models.User, error) {
	var out models.User
	err := c.doJSON(ctx, http.MethodPut, PathUserPhone(id), models.UpdatePhoneRequest{Phone: phone}, &out)
	return out, err
}

func (c *HTTPClient) GetTransporter(ctx context.Context, id int64) (models.TransporterProfile, error) {
	var out models.TransporterProfile
	err := c.doJSON(ctx, http.MethodGet, PathTransporter(id), nil, &out)
	return out, err
}

func (c *HTTPClient) CreateTransporter(ctx context.Context, req models.CreateTransporterProfileRequest) (models.TransporterProfile, error) {
	var out models.TransporterProfile
	err := c.doJSON(ctx, http.MethodPost, PathTransporters, req, &out)
	return out, err
}

func (c *HTTPClient) UpdateTransporter(ctx context.Context, id int64, req models.UpdateTransporterProfileRequest) (models.TransporterProfile, error) {
	var out models.TransporterProfile
	err := c.doJSON(ctx, http.MethodPut, PathTransporter(id), req, &out)
	return out, err
}

// UploadTransporterPhoto sends the image as the multipart field "file".
func (c *HTTPClient) UploadTransporterPhoto(ctx context.Context, id int64, filename string, r io.Reader) (models.TransporterProfile, error) {
	var out models.TransporterProfile

	data, err := io.ReadAll(r)
	if err != nil {
		return out, fmt.Errorf("read photo: %w", err)
	}
	body, contentType, err := netx.MultipartFile("file", filename, data)
	if err != nil {
		return out, err
	}

	err = c.do(ctx, http.MethodPost, PathTransporterPhoto(id), body, contentType, &out)
	return out, err
}

func (c *HTTPClient) CreateTrip(ctx context.Context, req models.CreateTripRequest) (models.Trip, error) {
	var out models.Trip
	err := c.doJSON(ctx, http.MethodPost, PathTrips, req, &out)
	return out, err
}

func (c *HTTPClient) GetTrip(ctx context.Context, id models.ID) (models.Trip, error) {
	var out models.Trip
	err := c.doJSON(ctx, http.MethodGet, PathTrip(id), nil, &out)
	return out, err
}

func (c *HTTPClient) UpdateTrip(ctx context.Context, id models.ID, req models.UpdateTripRequest) (models.Trip, error) {
	var out models.Trip
	err := c.doJSON(ctx, http.MethodPut, PathTrip(id), req, &out)
	return out, err
}

func (c *HTTPClient) DeleteTrip(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, PathTrip(id), nil, nil)
}

func (c *HTTPClient) TransporterTrips(ctx context.Context, transporterID int64) ([]models.Trip, error) {
	return c.tripList(ctx, PathTransporterTrips(transporterID))
}

// SearchTrips sends only the non-empty criteria.
func (c *HTTPClient) SearchTrips(ctx context.Context, p models.SearchParams) ([]models.Trip, error) {
	q := BuildQueryString(
		Param{"departureCity", p.DepartureCity},
		Param{"arrivalCity", p.ArrivalCity},
		Param{"date", p.Date},
	)
	return c.tripList(ctx, PathTripSearch+q)
}

// tripList treats any non-array body as an empty list.
func (c *HTTPClient) tripList(ctx context.Context, path string) ([]models.Trip, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		c.log.Warn(ctx, "trip list response is not an array", "path", path)
		return []models.Trip{}, nil
	}

	out := []models.Trip{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, malformed(fmt.Sprintf("GET %s: %v", path, err))
	}
	return out, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.Booking, error) {
	var out models.Booking
	err := c.doJSON(ctx, http.MethodPost, PathBookings, req, &out)
	return out, err
}

func (c *HTTPClient) GetBooking(ctx context.Context, id models.ID) (models.Booking, error) {
	var out models.Booking
	err := c.doJSON(ctx, http.MethodGet, PathBooking(id), nil, &out)
	return out, err
}

func (c *HTTPClient) UserBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	out := []models.Booking{}
	err := c.doJSON(ctx, http.MethodGet, PathUserBookings(userID), nil, &out)
	return out, err
}
