package models

// Trip as listed by search and by the transporter's own trips.
// Times are canonical local ISO strings (YYYY-MM-DDTHH:MM:SS).
type Trip struct {
	ID                  ID               `json:"id"`
	TransporterID       int64            `json:"transporterId"`
	DepartureCity       string           `json:"departureCity"`
	ArrivalCity         string           `json:"arrivalCity"`
	DepartureTime       string           `json:"departureTime"`
	ArrivalTime         string           `json:"arrivalTime,omitempty"`
	TotalCapacityKg     float64          `json:"totalCapacityKg"`
	AvailableCapacityKg float64          `json:"availableCapacityKg"`
	PricePerKg          float64          `json:"pricePerKg"`
	Status              string           `json:"status,omitempty"`
	CollectionStops     []CollectionStop `json:"collectionStops,omitempty"`
	DeliveryStops       []DeliveryStop   `json:"deliveryStops,omitempty"`
}

type CollectionStop struct {
	City        string `json:"city"`
	FullAddress string `json:"fullAddress"`
	StopTime    string `json:"stopTime"`
}

type DeliveryStop struct {
	City        string `json:"city"`
	FullAddress string `json:"fullAddress"`
	StopTime    string `json:"stopTime"`
}

// CreateTripRequest is built once from a validated draft. DeliveryStops is
// always encoded, as an empty list when there are none.
type CreateTripRequest struct {
	TransporterID   int64            `json:"transporterId"`
	TotalCapacityKg float64          `json:"totalCapacityKg"`
	DepartureCity   string           `json:"departureCity"`
	ArrivalCity     string           `json:"arrivalCity"`
	DepartureTime   string           `json:"departureTime"`
	ArrivalTime     string           `json:"arrivalTime"`
	PricePerKg      float64          `json:"pricePerKg"`
	CollectionStops []CollectionStop `json:"collectionStops"`
	DeliveryStops   []DeliveryStop   `json:"deliveryStops"`
}

// UpdateTripRequest is a partial update; nil fields are left alone.
type UpdateTripRequest struct {
	DepartureCity   *string  `json:"departureCity,omitempty"`
	ArrivalCity     *string  `json:"arrivalCity,omitempty"`
	DepartureTime   *string  `json:"departureTime,omitempty"`
	ArrivalTime     *string  `json:"arrivalTime,omitempty"`
	TotalCapacityKg *float64 `json:"totalCapacityKg,omitempty"`
	PricePerKg      *float64 `json:"pricePerKg,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

// SearchParams are the trip search criteria. Empty values are not sent.
type SearchParams struct {
	DepartureCity string
	ArrivalCity   string
	Date          string
}

type Booking struct {
	ID        ID     `json:"id"`
	SenderID  int64  `json:"senderId"`
	TripID    ID     `json:"tripId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type CreateBookingRequest struct {
	SenderID int64 `json:"senderId"`
	TripID   ID    `json:"tripId"`
}

// ErrorBody is the backend's JSON error envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
}
