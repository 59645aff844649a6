package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/event"
)

func TestFullVisitReleasesTable(t *testing.T) {
	rules := quietRules()
	rules.PlatePreparationTime = 1
	rules.DiningTime = 3
	h := newHarness(t, rules, []component.Position{{X: 3, Y: 4}}, 1, 1)
	table := h.tables[0]
	h.seat(t, table, 2)
	require.Equal(t, 2, h.deps.World.Guests.Len())

	var left []event.PartyLeft
	event.Subscribe(h.deps.Bus, func(e event.PartyLeft) { left = append(left, e) })

	h.tickUntil(t, 50, func() bool { return h.table(t, table).Status == component.TableDining })
	plate := h.table(t, table).Plate
	require.False(t, plate.IsZero())

	h.tickUntil(t, 10, func() bool { return h.table(t, table).Status == component.TableUnoccupied })

	tb := h.table(t, table)
	assert.True(t, tb.Plate.IsZero())
	assert.True(t, tb.Chef.IsZero())
	assert.True(t, tb.Waiter.IsZero())
	assert.False(t, tb.ColdPlate)
	assert.Zero(t, h.deps.World.PartySize(table))
	assert.Zero(t, h.deps.World.Guests.Len())
	assert.Zero(t, h.deps.World.Plates.Len())
	assert.Zero(t, h.deps.World.PlateCount())
	assert.False(t, h.deps.World.Happiness.Has(table))
	assert.False(t, h.deps.World.Timers.Has(table))
	assert.False(t, h.deps.World.ECS().Alive(plate))
	assert.Equal(t, component.ChefIdle, h.chef(t, h.chefs[0]).Status)
	assert.Equal(t, component.WaiterIdle, h.waiter(t, h.waiters[0]).Status)

	assert.Empty(t, left)
	h.tick(1)
	require.Len(t, left, 1)
	assert.Equal(t, table, left[0].Table)
	assert.Equal(t, 2, left[0].PartySize)
	assert.Greater(t, left[0].Happiness, 0.0)
	assert.GreaterOrEqual(t, left[0].Rating, 0.0)
	assert.LessOrEqual(t, left[0].Rating, 5.0)

	// The table takes a new party straight away.
	h.seat(t, table, 1)
	assert.Equal(t, component.TableUnassigned, h.table(t, table).Status)
}

func TestDepartureWaitsForDiningTimer(t *testing.T) {
	rules := quietRules()
	rules.PlatePreparationTime = 1
	rules.DiningTime = 10
	h := newHarness(t, rules, []component.Position{{X: 1}}, 1, 1)
	table := h.tables[0]
	h.seat(t, table, 1)
	h.tickUntil(t, 50, func() bool { return h.table(t, table).Status == component.TableDining })

	h.tick(9)
	assert.Equal(t, component.TableDining, h.table(t, table).Status)
	assert.Equal(t, 1, h.deps.World.PartySize(table))

	h.tick(1)
	assert.Equal(t, component.TableUnoccupied, h.table(t, table).Status)
}

func TestDepartureWithoutPlatePanicsWhenStrict(t *testing.T) {
	h := newHarness(t, quietRules(), []component.Position{{X: 1}}, 0, 0)
	table := h.tables[0]
	h.seat(t, table, 1)
	tb := h.table(t, table)
	tb.Status = component.TableDining
	h.deps.World.StartTimer(table, 0)

	assert.Panics(t, func() {
		NewDepartureSystem(h.deps).Update(0)
	})
}
