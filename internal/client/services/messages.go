package services

import (
	"errors"
	"net/http"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/trips"
	"github.com/colisroute/colis/internal/datetime"
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgAccountNotFound    = "Account not found"
	MsgUnreachable        = "Unable to connect to server. Please check your connection."
	MsgIncompleteResponse = "The server returned an incomplete response"
	MsgGeneric            = "Something went wrong. Please try again."
)

// FormError is a local form problem. Fields lists every offending field.
type FormError struct {
	Fields  []string
	Message string
}

func (e *FormError) Error() string { return e.Message }

// UserMessage turns any service error into the single line shown to the user.
// The backend's own message wins; otherwise the error category decides.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var ve *trips.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var dfe *datetime.FormatError
	if errors.As(err, &dfe) {
		return dfe.Error()
	}
	if errors.Is(err, trips.ErrNoTransporter) {
		return trips.ErrNoTransporter.Error()
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return MsgInvalidCredentials
		case http.StatusNotFound:
			return MsgAccountNotFound
		}
		return MsgGeneric
	}

	switch {
	case errors.Is(err, api.ErrUnavailable):
		return MsgUnreachable
	case errors.Is(err, api.ErrMalformedResponse):
		return MsgIncompleteResponse
	}
	return MsgGeneric
}
