package trips

import (
	"fmt"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/datetime"
)

// BuildRequest validates d and assembles the create-trip payload.
// Stops without an address are dropped; delivery stops are always empty.
func BuildRequest(d Draft, transporterID int64) (models.CreateTripRequest, error) {
	weight, price, err := d.ValidateForSubmit()
	if err != nil {
		return models.CreateTripRequest{}, err
	}
	if transporterID <= 0 {
		return models.CreateTripRequest{}, ErrNoTransporter
	}

	departure, err := datetime.ToISO(d.DepartureDateTime)
	if err != nil {
		return models.CreateTripRequest{}, fmt.Errorf("departure: %w", err)
	}
	arrival, err := datetime.ToISO(d.ArrivalDateTime)
	if err != nil {
		return models.CreateTripRequest{}, fmt.Errorf("arrival: %w", err)
	}

	stops := make([]models.CollectionStop, 0, len(d.Stops))
	for i, s := range d.Stops {
		addr := strings.TrimSpace(s.Address)
		if addr == "" {
			continue
		}
		at, err := datetime.ToISO(s.DateTime)
		if err != nil {
			return models.CreateTripRequest{}, fmt.Errorf("stop %d: %w", i+1, err)
		}
		stops = append(stops, models.CollectionStop{City: addr, FullAddress: addr, StopTime: at})
	}

	return models.CreateTripRequest{
		TransporterID:   transporterID,
		TotalCapacityKg: weight,
		DepartureCity:   strings.TrimSpace(d.StartAddress),
		ArrivalCity:     strings.TrimSpace(d.EndAddress),
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		PricePerKg:      price,
		CollectionStops: stops,
		DeliveryStops:   []models.DeliveryStop{},
	}, nil
}
