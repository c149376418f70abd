package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/services"
	"github.com/colisroute/colis/internal/client/trips"
	"github.com/colisroute/colis/internal/datetime"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	a.say("Usage:", text)
	return errUsage
}

// ask prompts with the current value shown; an empty answer keeps it.
func (a *App) ask(prompt, cur string) (string, error) {
	if cur != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, cur)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return cur, nil
	}
	return v, nil
}

func (a *App) Search(ctx context.Context) error {
	var c services.SearchCriteria
	var err error
	if c.CollectionCity, err = getSimpleText(a.reader, "Collection city", a.out); err != nil {
		return err
	}
	if c.DeliveryCity, err = getSimpleText(a.reader, "Delivery city", a.out); err != nil {
		return err
	}
	if c.Date, err = getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}

	res, err := a.trips.Search(ctx, c)
	if err != nil {
		return a.fail(ctx, "search failed", err)
	}
	p := c.Params()
	printTrips(a.out, fmt.Sprintf("Trips %s -> %s", p.DepartureCity, p.ArrivalCity), res)
	if len(res) > 0 {
		a.say("Book one with 'book <id>'.")
	}
	return nil
}

func (a *App) Book(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("book <trip id>")
	}
	b, err := a.bookings.Book(ctx, models.ID(args[0]))
	if err != nil {
		return a.fail(ctx, "booking failed", err)
	}
	a.say("Booked! Booking", b.ID, "is", strings.ToLower(b.Status))
	return nil
}

func (a *App) Bookings(ctx context.Context) error {
	list, err := a.bookings.Mine(ctx)
	if err != nil {
		return a.fail(ctx, "list bookings failed", err)
	}
	printBookings(a.out, list)
	return nil
}

// Trips is the transporter dashboard: upcoming trips soonest first, then past ones.
func (a *App) Trips(ctx context.Context) error {
	upcoming, past, err := a.trips.TransporterTrips(ctx)
	if err != nil {
		return a.fail(ctx, "list trips failed", err)
	}
	printTrips(a.out, "Upcoming trips", upcoming)
	printTrips(a.out, "Past trips", past)
	return nil
}

func (a *App) ShowTrip(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("trip <id>")
	}
	t, err := a.trips.Get(ctx, models.ID(args[0]))
	if err != nil {
		return a.fail(ctx, "get trip failed", err)
	}
	printTrip(a.out, t)
	return nil
}

func (a *App) DeleteTrip(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("deltrip <id>")
	}
	if err := a.trips.Delete(ctx, models.ID(args[0])); err != nil {
		return a.fail(ctx, "delete trip failed", err)
	}
	a.say("Trip", args[0], "deleted")
	return nil
}

var (
	stepTwoOptions = []string{"Publish", "Back", "Cancel"}
	retryOptions   = []string{"Retry", "Cancel"}
)

// AddTrip runs the two-step trip wizard: route, then capacity and pricing.
// A failed step or submission keeps the draft so the user can fix it.
func (a *App) AddTrip(ctx context.Context) error {
	w := trips.NewWizard()
	for {
		a.say(fmt.Sprintf("Step %d/%d", w.Step(), trips.TotalSteps))

		if w.Step() == 1 {
			if err := a.routeStep(&w.Draft); err != nil {
				return err
			}
			if err := w.Next(); err != nil {
				a.say("Error:", services.UserMessage(err))
				if c, err := getChoice(a.reader, "What now?", retryOptions, a.out); err != nil || c == 1 {
					a.say("Trip discarded")
					return nil
				}
			}
			continue
		}

		if err := a.pricingStep(&w.Draft); err != nil {
			return err
		}
		c, err := getChoice(a.reader, "Ready?", stepTwoOptions, a.out)
		if err != nil || c == 2 {
			a.say("Trip discarded")
			return nil
		}
		if c == 1 {
			w.Back()
			continue
		}

		t, err := a.trips.Create(ctx, w)
		if err != nil {
			a.say("Error:", services.UserMessage(err))
			a.log.Warn(ctx, "trip submission failed", "error", err)
			if errors.Is(err, trips.ErrNoTransporter) {
				return err
			}
			continue
		}
		a.say("Trip published:", t.ID)
		return nil
	}
}

func (a *App) routeStep(d *trips.Draft) error {
	var err error
	if d.StartAddress, err = a.ask("Departure address", d.StartAddress); err != nil {
		return err
	}
	if d.DepartureDateTime, err = a.ask("Departure date and time ("+datetime.Expected+")", d.DepartureDateTime); err != nil {
		return err
	}

	d.Stops = nil
	a.say("Collection stops on the way (empty address to finish, 'undo' drops the last one)")
	for {
		addr, err := getSimpleText(a.reader, fmt.Sprintf("Stop %d address", len(d.Stops)+1), a.out)
		if err != nil {
			return err
		}
		if addr == "" {
			break
		}
		if strings.EqualFold(addr, "undo") {
			if err := d.RemoveStop(len(d.Stops) - 1); err != nil {
				a.say(err.Error())
			}
			continue
		}
		when, err := getSimpleText(a.reader, "Stop date and time ("+datetime.Expected+")", a.out)
		if err != nil {
			return err
		}
		i := d.AddStop()
		d.Stops[i] = trips.Stop{Address: addr, DateTime: when}
	}

	if d.EndAddress, err = a.ask("Arrival address", d.EndAddress); err != nil {
		return err
	}
	if d.ArrivalDateTime, err = a.ask("Arrival date and time ("+datetime.Expected+")", d.ArrivalDateTime); err != nil {
		return err
	}
	return nil
}

func (a *App) pricingStep(d *trips.Draft) error {
	a.say("Route:", d.StartAddress, "->", d.EndAddress)
	a.say("Stops:", trips.StopsSummary(d.Stops))

	var err error
	if d.AvailableWeight, err = a.ask("Available weight (kg)", d.AvailableWeight); err != nil {
		return err
	}
	if d.PricePerKg, err = a.ask("Price per kg", d.PricePerKg); err != nil {
		return err
	}
	if _, _, err := d.ValidatePricing(); err != nil {
		a.say("Warning:", services.UserMessage(err))
	}
	return nil
}
