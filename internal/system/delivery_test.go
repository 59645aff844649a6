package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/config"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
)

func coldPlateRules() config.Rules {
	r := quietRules()
	r.HappinessCooldown = 0
	r.PlateCooldownFactor = 0
	r.PlateInitialTemperature = 50
	r.PlatePreparationTime = 2
	r.DiningTime = 100
	return r
}

func TestDeliveryWalksAndServes(t *testing.T) {
	rules := quietRules()
	rules.PlatePreparationTime = 2
	h := newHarness(t, rules, []component.Position{{X: 3, Y: 4}}, 1, 1)
	table, waiter := h.tables[0], h.waiters[0]
	h.seat(t, table, 1)

	var delivered []event.PlateDelivered
	event.Subscribe(h.deps.Bus, func(e event.PlateDelivered) { delivered = append(delivered, e) })

	// Ready on tick 3; the waiter is already at the pass so it picks up at once.
	h.tick(3)
	w := h.waiter(t, waiter)
	require.Equal(t, component.WaiterWalkingToTable, w.Status)
	assert.Equal(t, table, w.Table)
	assert.Equal(t, waiter, h.table(t, table).Waiter)
	tm, ok := h.deps.World.Timers.Get(waiter)
	require.True(t, ok)
	assert.InDelta(t, 5.0, tm.Deadline, 1e-12)
	plate := w.Plate

	h.tick(4)
	assert.Equal(t, component.WaiterWalkingToTable, w.Status)

	h.tick(1)
	tb := h.table(t, table)
	assert.Equal(t, component.TableDining, tb.Status)
	assert.Equal(t, plate, tb.Plate)
	assert.True(t, tb.Waiter.IsZero())
	assert.False(t, tb.ColdPlate)
	assert.Equal(t, component.WaiterIdle, w.Status)
	assert.True(t, w.Table.IsZero())
	assert.True(t, w.Plate.IsZero())

	p, err := h.deps.World.Plate(plate)
	require.NoError(t, err)
	assert.Equal(t, component.PlateInUse, p.Status)

	dining, ok := h.deps.World.Timers.Get(table)
	require.True(t, ok)
	assert.Equal(t, rules.DiningTime, dining.Deadline)
	assert.False(t, h.deps.World.Timers.Has(waiter))

	// The waiter walked out to the table.
	dist, _ := h.deps.World.Distances.Get(waiter)
	assert.InDelta(t, 6.0, dist.Value, 1e-9)

	h.tick(1)
	require.Len(t, delivered, 1)
	assert.Equal(t, plate, delivered[0].Plate)
	assert.False(t, delivered[0].Cold)
}

func TestColdPlatePenaltyAppliedOnce(t *testing.T) {
	h := newHarness(t, coldPlateRules(), []component.Position{{X: 3, Y: 4}}, 1, 1)
	table := h.tables[0]
	h.seat(t, table, 1)

	h.tickUntil(t, 50, func() bool { return h.table(t, table).Status == component.TableDining })
	tb := h.table(t, table)
	assert.True(t, tb.ColdPlate)
	hv, ok := h.deps.World.Happiness.Get(table)
	require.True(t, ok)
	assert.Equal(t, 0.75, hv.Value)

	h.tick(20)
	assert.Equal(t, 0.75, hv.Value)
}

func TestWaitersReturnToKitchenBeforePickup(t *testing.T) {
	rules := quietRules()
	rules.PlatePreparationTime = 2
	h := newHarness(t, rules, []component.Position{{X: 3, Y: 4}, {X: -3, Y: 4}}, 1, 1)
	waiter := h.waiters[0]
	h.seat(t, h.tables[0], 1)

	h.tickUntil(t, 50, func() bool { return h.table(t, h.tables[0]).Status == component.TableDining })
	dist, _ := h.deps.World.Distances.Get(waiter)
	out := dist.Value
	require.Greater(t, out, 0.0)

	h.seat(t, h.tables[1], 1)
	h.tickUntil(t, 50, func() bool {
		return h.waiter(t, waiter).Status == component.WaiterWalkingToKitchen
	})
	assert.Less(t, dist.Value, out)

	h.tickUntil(t, 50, func() bool {
		return h.waiter(t, waiter).Status == component.WaiterWalkingToTable
	})
	assert.InDelta(t, rules.WaiterSpeed, dist.Value, 1e-9)
}

func TestWalkToTableWithoutTimerPanicsWhenStrict(t *testing.T) {
	h := newHarness(t, quietRules(), []component.Position{{X: 5}}, 0, 1)
	w := h.waiter(t, h.waiters[0])
	w.Status = component.WaiterWalkingToTable
	w.Table = h.tables[0]

	assert.Panics(t, func() {
		NewWalkToTableSystem(h.deps).Update(time.Second)
	})
}

func TestBreachIsLoggedAndSkipped(t *testing.T) {
	rules := quietRules()
	rules.StrictInvariants = false
	h := newHarness(t, rules, []component.Position{{X: 5}}, 0, 1)
	core, logs := observer.New(zap.ErrorLevel)
	h.deps.Log = zap.New(core)

	w := h.waiter(t, h.waiters[0])
	w.Status = component.WaiterWalkingToKitchen
	w.Table = h.tables[0]

	// No plate was ever cooked for the table.
	NewWalkToKitchenSystem(h.deps).Update(time.Second)
	assert.Equal(t, component.WaiterWalkingToKitchen, w.Status)

	entries := logs.FilterMessage("invariant breach").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "walk_to_kitchen", entries[0].ContextMap()["rule"])
}

func TestWaiterAssignmentIsOneToOne(t *testing.T) {
	rules := quietRules()
	rules.PlatePreparationTime = 1
	layout := []component.Position{{X: 5}, {X: 10}, {X: 15}}
	h := newHarness(t, rules, layout, 3, 2)
	for _, table := range h.tables {
		h.seat(t, table, 1)
	}

	// Chefs start on tick 1, all three plates are ready on tick 2.
	h.tick(2)
	require.Equal(t, 3, countPlates(h, component.PlateReady))

	claims := make(map[ecs.EntityID]int)
	var unclaimed []ecs.EntityID
	h.deps.World.Plates.Each(func(id ecs.EntityID, p *component.Plate) {
		if p.Waiter.IsZero() {
			unclaimed = append(unclaimed, id)
			return
		}
		claims[p.Waiter]++
	})
	require.Len(t, claims, 2)
	for _, waiter := range h.waiters {
		assert.Equal(t, 1, claims[waiter], "waiter %d", waiter.Index())
	}
	require.Len(t, unclaimed, 1)

	p, err := h.deps.World.Plate(unclaimed[0])
	require.NoError(t, err)
	assert.Equal(t, h.tables[2], p.Table)
	assert.True(t, h.table(t, h.tables[2]).Waiter.IsZero())
	assert.NotEqual(t, h.waiter(t, h.waiters[0]).Table, h.waiter(t, h.waiters[1]).Table)
}

func TestPlateWithMissingTableDoesNotHoldWaiter(t *testing.T) {
	rules := quietRules()
	rules.StrictInvariants = false
	h := newHarness(t, rules, []component.Position{{X: 5}, {X: 10}}, 1, 1)
	core, logs := observer.New(zap.ErrorLevel)
	h.deps.Log = zap.New(core)
	gone, kept := h.tables[0], h.tables[1]
	waiter := h.waiters[0]

	orphan := h.deps.World.NewPlate(h.chefs[0])
	good := h.deps.World.NewPlate(h.chefs[0])
	for id, table := range map[ecs.EntityID]ecs.EntityID{orphan: gone, good: kept} {
		p, err := h.deps.World.Plate(id)
		require.NoError(t, err)
		p.Status = component.PlateReady
		p.Table = table
	}
	h.deps.World.Destroy(gone)
	h.deps.World.Flush()

	NewAssignWaiterSystem(h.deps).Update(time.Second)

	assert.Equal(t, kept, h.waiter(t, waiter).Table)
	assert.Equal(t, component.WaiterWalkingToKitchen, h.waiter(t, waiter).Status)
	pg, err := h.deps.World.Plate(good)
	require.NoError(t, err)
	assert.Equal(t, waiter, pg.Waiter)
	po, err := h.deps.World.Plate(orphan)
	require.NoError(t, err)
	assert.True(t, po.Waiter.IsZero())
	assert.Equal(t, 1, logs.FilterMessage("invariant breach").Len())
}

func TestServeWithoutTemperatureIsBreach(t *testing.T) {
	rules := quietRules()
	rules.StrictInvariants = false
	rules.PlatePreparationTime = 2
	h := newHarness(t, rules, []component.Position{{X: 3, Y: 4}}, 1, 1)
	core, logs := observer.New(zap.ErrorLevel)
	h.deps.Log = zap.New(core)
	table, waiter := h.tables[0], h.waiters[0]
	h.seat(t, table, 1)

	h.tick(3)
	w := h.waiter(t, waiter)
	require.Equal(t, component.WaiterWalkingToTable, w.Status)
	h.deps.World.Temperatures.Remove(w.Plate)

	// Walk timer (5s) expires on tick 8.
	h.tick(5)
	assert.Equal(t, component.TableWaiting, h.table(t, table).Status)
	assert.Equal(t, component.WaiterWalkingToTable, w.Status)
	entries := logs.FilterMessage("invariant breach").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "walk_to_table", entries[0].ContextMap()["rule"])

	rules.StrictInvariants = true
	h.deps.Rules = rules
	assert.Panics(t, func() { h.tick(1) })
}
