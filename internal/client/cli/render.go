package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/colisroute/colis/internal/client/models"
)

func printTrips(w io.Writer, title string, list []models.Trip) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(list))
	if len(list) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTO\tDEPARTURE\tFREE KG\tPRICE/KG")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%g\n",
			t.ID, t.DepartureCity, t.ArrivalCity, shortTime(t.DepartureTime), t.AvailableCapacityKg, t.PricePerKg)
	}
	_ = tw.Flush()
}

func printTrip(w io.Writer, t models.Trip) {
	fmt.Fprintf(w, "Trip %s: %s -> %s\n", t.ID, t.DepartureCity, t.ArrivalCity)
	fmt.Fprintf(w, "  departure: %s\n", shortTime(t.DepartureTime))
	if t.ArrivalTime != "" {
		fmt.Fprintf(w, "  arrival:   %s\n", shortTime(t.ArrivalTime))
	}
	fmt.Fprintf(w, "  capacity:  %g / %g kg at %g per kg\n", t.AvailableCapacityKg, t.TotalCapacityKg, t.PricePerKg)
	if t.Status != "" {
		fmt.Fprintf(w, "  status:    %s\n", t.Status)
	}
	for i, s := range t.CollectionStops {
		fmt.Fprintf(w, "  stop %d:    %s (%s)\n", i+1, s.FullAddress, shortTime(s.StopTime))
	}
}

func printBookings(w io.Writer, list []models.Booking) {
	fmt.Fprintf(w, "Bookings (%d)\n", len(list))
	for _, b := range list {
		fmt.Fprintf(w, "  %s  trip %s  %s\n", b.ID, b.TripID, b.Status)
	}
}

// shortTime renders a canonical timestamp without seconds.
func shortTime(s string) string {
	s = strings.Replace(s, "T", " ", 1)
	if len(s) == len("2006-01-02 15:04:05") && strings.HasSuffix(s, ":00") {
		return s[:len(s)-3]
	}
	return s
}
