package trips

import (
	"context"
	"errors"
	"testing"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/datetime"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	d := validDraft()
	d.StartAddress = " Tunis "
	d.Stops = []Stop{
		{Address: "", DateTime: ""},
		{Address: "Lyon", DateTime: "2025-3-4"},
		{Address: "  ", DateTime: "garbage is ignored for empty stops"},
	}

	got, err := BuildRequest(d, 7)
	require.NoError(t, err)

	want := models.CreateTripRequest{
		TransporterID:   7,
		TotalCapacityKg: 120,
		DepartureCity:   "Tunis",
		ArrivalCity:     "Paris",
		DepartureTime:   "2025-03-04T09:30:00",
		ArrivalTime:     "2025-03-05T00:00:00",
		PricePerKg:      8.5,
		CollectionStops: []models.CollectionStop{{City: "Lyon", FullAddress: "Lyon", StopTime: "2025-03-04T00:00:00"}},
		DeliveryStops:   []models.DeliveryStop{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRequest_NoStopsIsEmptyList(t *testing.T) {
	got, err := BuildRequest(validDraft(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got.CollectionStops)
	assert.Empty(t, got.CollectionStops)
	assert.NotNil(t, got.DeliveryStops)
}

func TestBuildRequest_Errors(t *testing.T) {
	_, err := BuildRequest(validDraft(), 0)
	require.ErrorIs(t, err, ErrNoTransporter)
	assert.Equal(t, MsgTransporter, err.Error())

	d := validDraft()
	d.DepartureDateTime = "04/03/2025"
	_, err = BuildRequest(d, 7)
	require.ErrorIs(t, err, datetime.ErrFormat)
	assert.Contains(t, err.Error(), "04/03/2025")

	d = validDraft()
	d.Stops = []Stop{{Address: "Lyon", DateTime: "demain"}}
	_, err = BuildRequest(d, 7)
	require.ErrorIs(t, err, datetime.ErrFormat)
}

func TestWizard_Flow(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, 1, w.Step())
	assert.Equal(t, 0.5, w.Progress())

	err := w.Next()
	requireValidation(t, err, FieldStartAddress, MsgStartAddress)
	assert.Equal(t, 1, w.Step())

	w.Draft = validDraft()
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.Step())
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.Step())

	w.Back()
	w.Back()
	assert.Equal(t, 1, w.Step())
}

func TestWizard_SubmitKeepsDraftOnFailure(t *testing.T) {
	w := NewWizard()
	w.Draft = validDraft()
	require.NoError(t, w.Next())
	before := w.Draft

	var calls int
	boom := errors.New("backend down")
	_, err := w.Submit(context.Background(), 7, func(ctx context.Context, req models.CreateTripRequest) (models.Trip, error) {
		calls++
		return models.Trip{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, w.Step())
	assert.Equal(t, before, w.Draft)

	trip, err := w.Submit(context.Background(), 7, func(ctx context.Context, req models.CreateTripRequest) (models.Trip, error) {
		return models.Trip{ID: "1", DepartureCity: req.DepartureCity}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Tunis", trip.DepartureCity)
}

func TestWizard_SubmitValidationSkipsBackend(t *testing.T) {
	w := NewWizard()
	w.Draft = validDraft()
	w.Draft.AvailableWeight = "-1"

	_, err := w.Submit(context.Background(), 7, func(ctx context.Context, req models.CreateTripRequest) (models.Trip, error) {
		t.Fatal("create must not be called")
		return models.Trip{}, nil
	})
	requireValidation(t, err, FieldWeight, MsgWeight)
}
