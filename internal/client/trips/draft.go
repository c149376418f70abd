package trips

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/colisroute/colis/internal/common"
)

// Stop is an optional collection point. Address and DateTime are free text.
type Stop struct {
	Address  string
	DateTime string
}

// Draft is the in-memory wizard state. Date/time fields stay free text
// until submission.
type Draft struct {
	StartAddress      string
	EndAddress        string
	DepartureDateTime string
	ArrivalDateTime   string
	Stops             []Stop
	AvailableWeight   string
	PricePerKg        string
}

// Field names reported by ValidationError.
const (
	FieldStartAddress = "startAddress"
	FieldEndAddress   = "endAddress"
	FieldDeparture    = "departureDateTime"
	FieldArrival      = "arrivalDateTime"
	FieldStops        = "stops"
	FieldWeight       = "availableWeight"
	FieldPrice        = "pricePerKg"
	FieldTransporter  = "transporterId"
)

const (
	MsgStartAddress = "Veuillez insérer une adresse de départ"
	MsgDate         = "Veuillez saisir la date"
	MsgEndAddress   = "Veuillez saisir l'adresse d'arrivée"
	MsgCities       = "Please set departure and arrival cities"
	MsgCapacity     = "Please set capacity and pricing"
	MsgWeight       = "Please enter a valid weight"
	MsgPrice        = "Please enter a valid price"
	MsgTransporter  = "Transporter ID not found. Please login again."
)

// ValidationError is the first problem found in a draft. For FieldStops,
// StopIndexes lists every stop that has an address but no date.
type ValidationError struct {
	Field       string
	Message     string
	StopIndexes []int
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateRoute is the step-one check run before advancing.
func (d Draft) ValidateRoute() error {
	switch {
	case blank(d.StartAddress):
		return invalid(FieldStartAddress, MsgStartAddress)
	case blank(d.DepartureDateTime):
		return invalid(FieldDeparture, MsgDate)
	case blank(d.EndAddress):
		return invalid(FieldEndAddress, MsgEndAddress)
	case blank(d.ArrivalDateTime):
		return invalid(FieldArrival, MsgDate)
	}
	return d.validateStops()
}

// validateStops rejects stops that have an address but no date. Stops with
// no address never block.
func (d Draft) validateStops() error {
	var bad []int
	for i, s := range d.Stops {
		if !blank(s.Address) && blank(s.DateTime) {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Field: FieldStops, Message: MsgDate, StopIndexes: bad}
	}
	return nil
}

// ValidatePricing parses capacity and price. Both must be finite and > 0.
func (d Draft) ValidatePricing() (weight, price float64, err error) {
	if blank(d.AvailableWeight) || blank(d.PricePerKg) {
		return 0, 0, invalid(FieldWeight, MsgCapacity)
	}

	weight, ok := positive(d.AvailableWeight)
	if !ok {
		return 0, 0, invalid(FieldWeight, MsgWeight)
	}
	price, ok = positive(d.PricePerKg)
	if !ok {
		return 0, 0, invalid(FieldPrice, MsgPrice)
	}
	return weight, price, nil
}

func positive(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// ValidateForSubmit re-checks the whole draft the way the final submit does.
func (d Draft) ValidateForSubmit() (weight, price float64, err error) {
	switch {
	case blank(d.StartAddress) || blank(d.EndAddress):
		return 0, 0, invalid(FieldStartAddress, MsgCities)
	case blank(d.DepartureDateTime):
		return 0, 0, invalid(FieldDeparture, MsgDate)
	case blank(d.ArrivalDateTime):
		return 0, 0, invalid(FieldArrival, MsgDate)
	}
	if err := d.validateStops(); err != nil {
		return 0, 0, err
	}
	return d.ValidatePricing()
}

// AddStop appends an empty stop and returns its index.
func (d *Draft) AddStop() int {
	d.Stops = append(d.Stops, Stop{})
	return len(d.Stops) - 1
}

func (d *Draft) RemoveStop(i int) error {
	if i < 0 || i >= len(d.Stops) {
		return fmt.Errorf("no stop #%d", i+1)
	}
	d.Stops = append(d.Stops[:i], d.Stops[i+1:]...)
	return nil
}

// StopsSummary lists the non-empty stop addresses, or "No stops".
func StopsSummary(stops []Stop) string {
	var names []string
	for _, s := range stops {
		if a := strings.TrimSpace(s.Address); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return "No stops"
	}
	return strings.Join(names, ", ")
}

// ErrNoTransporter is returned when the session carries no user id.
var ErrNoTransporter = errors.New(MsgTransporter)
