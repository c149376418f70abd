package trips

import (
	"context"

	"github.com/colisroute/colis/internal/client/models"
)

const TotalSteps = 2

// CreateFunc publishes a built request.
type CreateFunc func(ctx context.Context, req models.CreateTripRequest) (models.Trip, error)

// Wizard walks a Draft through the route step and the pricing step.
// A failed Next or Submit leaves both the step and the draft untouched.
type Wizard struct {
	Draft Draft
	step  int
}

func NewWizard() *Wizard {
	return &Wizard{step: 1}
}

func (w *Wizard) Step() int { return w.step }

// Next validates the current step and advances. On the last step it is a no-op.
func (w *Wizard) Next() error {
	if w.step == 1 {
		if err := w.Draft.ValidateRoute(); err != nil {
			return err
		}
	}
	if w.step < TotalSteps {
		w.step++
	}
	return nil
}

func (w *Wizard) Back() {
	if w.step > 1 {
		w.step--
	}
}

// Progress is the completed fraction, 0..1.
func (w *Wizard) Progress() float64 {
	return float64(w.step) / TotalSteps
}

// Submit builds the payload and hands it to create. Nothing is retried.
func (w *Wizard) Submit(ctx context.Context, transporterID int64, create CreateFunc) (models.Trip, error) {
	req, err := BuildRequest(w.Draft, transporterID)
	if err != nil {
		return models.Trip{}, err
	}
	return create(ctx, req)
}
