package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
)

const (
	PathSignUp         = "/users/auth/signup"
	PathLogin          = "/users/auth/login"
	PathGoogleAuth     = "/users/auth/google"
	PathGoogleRegister = "/users/auth/google/register"
	PathLogout         = "/users/auth/logout"

	PathTransporters = "/catalog/transporters"
	PathTrips        = "/catalog/trips"
	PathTripSearch   = "/catalog/trips/search"
	PathBookings     = "/catalog/bookings"
)

func id64(id int64) string { return strconv.FormatInt(id, 10) }

func PathUser(id int64) string        { return "/users/" + id64(id) }
func PathUserPhone(id int64) string   { return PathUser(id) + "/phone" }
func PathTransporter(id int64) string { return PathTransporters + "/" + id64(id) }
func PathTransporterPhoto(id int64) string {
	return PathTransporter(id) + "/photo"
}
func PathTrip(id models.ID) string { return PathTrips + "/" + url.PathEscape(id.String()) }
func PathTransporterTrips(transporterID int64) string {
	return PathTrips + "/transporter/" + id64(transporterID)
}
func PathBooking(id models.ID) string      { return PathBookings + "/" + url.PathEscape(id.String()) }
func PathUserBookings(userID int64) string { return PathBookings + "/user/" + id64(userID) }

// Param is one query parameter. Order is preserved on the wire.
type Param struct {
	Key   string
	Value string
}

// BuildQueryString encodes params as "?k=v&...", skipping empty values.
// It returns "" when nothing is left.
func BuildQueryString(params ...Param) string {
	var b strings.Builder
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
