package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
)

func TestGridLayoutCentredOnKitchen(t *testing.T) {
	layout := GridLayout(6, 4, 5)
	require.Len(t, layout, 24)
	assert.Equal(t, component.Position{X: -15, Y: -10}, layout[0])
	assert.Equal(t, component.Position{X: 10, Y: 5}, layout[len(layout)-1])

	odd := GridLayout(3, 1, 2)
	assert.Equal(t, []component.Position{{X: -2, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 0}}, odd)
}

func TestDistanceToKitchen(t *testing.T) {
	assert.InDelta(t, 5.0, DistanceToKitchen(component.Position{X: 3, Y: -4}), 1e-12)
	assert.Zero(t, DistanceToKitchen(component.Position{}))
}

func TestPopulate(t *testing.T) {
	s := NewState()
	tables := s.Populate(GridLayout(2, 2, 5), 3, 2)
	assert.Len(t, tables, 4)
	assert.Len(t, s.TableIDs(), 4)
	assert.Len(t, s.ChefIDs(), 3)
	assert.Len(t, s.WaiterIDs(), 2)

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Tables[component.TableUnoccupied])
	assert.Equal(t, 3, snap.IdleChefs())
	assert.Equal(t, 2, snap.IdleWaiters())
	assert.Zero(t, snap.Guests)

	for _, w := range s.WaiterIDs() {
		d, ok := s.Distances.Get(w)
		require.True(t, ok)
		assert.Zero(t, d.Value)
	}
}

func TestPartySizeAndDismiss(t *testing.T) {
	s := NewState()
	table := s.AddTable(component.Position{X: 5})
	for i := 0; i < 3; i++ {
		s.SeatGuest(table)
	}
	assert.Equal(t, 3, s.PartySize(table))
	assert.Equal(t, 3, s.Guests.Len())

	s.DismissParty(table)
	s.DismissParty(table)
	assert.Equal(t, 3, s.Flush())
	assert.Zero(t, s.PartySize(table))
	assert.Zero(t, s.Guests.Len())
	_, err := s.Table(table)
	assert.NoError(t, err)
}

func TestDereferenceStaleHandles(t *testing.T) {
	s := NewState()
	chef := s.AddChef()
	plate := s.NewPlate(chef)

	p, err := s.Plate(plate)
	require.NoError(t, err)
	assert.Equal(t, component.PlatePreparing, p.Status)
	assert.Equal(t, chef, p.Chef)

	s.Destroy(plate)
	_, err = s.Plate(plate)
	assert.ErrorIs(t, err, ErrInvariant, "a queued plate no longer resolves")

	s.Flush()
	_, err = s.Plate(plate)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Zero(t, s.PlateCount())

	_, err = s.Table(ecs.None)
	assert.ErrorIs(t, err, ErrInvariant)
	_, err = s.Waiter(chef)
	assert.ErrorIs(t, err, ErrInvariant, "a chef is not a waiter")
}

func TestPlateForTable(t *testing.T) {
	s := NewState()
	table := s.AddTable(component.Position{X: 5})
	chef := s.AddChef()

	_, err := s.PlateForTable(table)
	assert.ErrorIs(t, err, ErrInvariant)

	plate := s.NewPlate(chef)
	p, _ := s.Plate(plate)
	p.Table = table
	got, err := s.PlateForTable(table)
	require.NoError(t, err)
	assert.Equal(t, plate, got)

	extra := s.NewPlate(chef)
	q, _ := s.Plate(extra)
	q.Table = table
	_, err = s.PlateForTable(table)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestSnapshotMeans(t *testing.T) {
	s := NewState()
	a := s.AddTable(component.Position{X: 5})
	b := s.AddTable(component.Position{X: -5})
	s.Happiness.Set(a, &component.Happiness{Value: 1})
	s.Happiness.Set(b, &component.Happiness{Value: 0.5})
	plate := s.NewPlate(s.AddChef())
	s.Temperatures.Set(plate, &component.Temperature{Value: 60})

	snap := s.Snapshot()
	assert.InDelta(t, 0.75, snap.MeanHappiness, 1e-12)
	assert.InDelta(t, 60, snap.MeanTemperature, 1e-12)
	assert.Equal(t, 1, snap.Plates[component.PlatePreparing])
	assert.False(t, math.IsNaN(NewState().Snapshot().MeanHappiness))
}

func TestTimerExpiry(t *testing.T) {
	s := NewState()
	chef := s.AddChef()
	tm := s.StartTimer(chef, 24)
	assert.False(t, tm.Expired())
	assert.Equal(t, 24.0, tm.Remaining())
	tm.Elapsed = 24
	assert.True(t, tm.Expired(), "expiry is elapsed >= deadline")
	assert.Zero(t, tm.Remaining())
}
