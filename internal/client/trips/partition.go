package trips

import (
	"sort"
	"time"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/datetime"
)

// Partition splits trips by departure relative to now. Upcoming trips depart
// strictly after now and are sorted by departure, earliest first; the rest
// (including unparseable departures) are past, in input order.
func Partition(trips []models.Trip, now time.Time) (upcoming, past []models.Trip) {
	type dated struct {
		trip models.Trip
		at   time.Time
	}
	var up []dated

	for _, t := range trips {
		at, err := datetime.Parse(t.DepartureTime, now.Location())
		if err != nil || !at.After(now) {
			past = append(past, t)
			continue
		}
		up = append(up, dated{t, at})
	}

	sort.SliceStable(up, func(i, j int) bool { return up[i].at.Before(up[j].at) })

	upcoming = make([]models.Trip, 0, len(up))
	for _, d := range up {
		upcoming = append(upcoming, d.trip)
	}
	return upcoming, past
}
