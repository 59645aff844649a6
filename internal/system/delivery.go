package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/world"
)

// WalkToKitchenSystem moves claimed waiters back to the pass. On arrival the
// waiter picks up the table's plate and starts a walk timer sized to the
// table's distance from the kitchen. Phase 6 (Delivery), first.
type WalkToKitchenSystem struct {
	deps *Deps
}

func NewWalkToKitchenSystem(deps *Deps) *WalkToKitchenSystem {
	return &WalkToKitchenSystem{deps: deps}
}

func (s *WalkToKitchenSystem) Phase() coresys.Phase { return coresys.PhaseDelivery }

func (s *WalkToKitchenSystem) Update(dt time.Duration) {
	d := s.deps
	step := d.Rules.WaiterSpeed * dt.Seconds()
	ecs.Each2(d.World.Waiters, d.World.Distances, func(waiter ecs.EntityID, w *component.Waiter, dist *component.DistanceFromKitchen) {
		if w.Status != component.WaiterWalkingToKitchen {
			return
		}
		dist.Value -= step
		if dist.Value > 0 {
			return
		}
		dist.Value = 0
		if err := s.pickUp(waiter, w); err != nil {
			// Stays at the pass and retries next tick.
			d.breach("walk_to_kitchen", waiter, err)
		}
	})
}

func (s *WalkToKitchenSystem) pickUp(waiter ecs.EntityID, w *component.Waiter) error {
	d := s.deps
	plate, err := d.World.PlateForTable(w.Table)
	if err != nil {
		return err
	}
	pos, ok := d.World.Positions.Get(w.Table)
	if !ok {
		_, err := d.World.Table(w.Table)
		return err
	}

	w.Plate = plate
	w.Status = component.WaiterWalkingToTable
	deadline := world.DistanceToKitchen(*pos) / d.Rules.WaiterSpeed
	d.World.StartTimer(waiter, deadline)

	d.Log.Debug("plate picked up",
		zap.Uint32("waiter", waiter.Index()),
		zap.Uint32("plate", plate.Index()),
		zap.Float64("walk_time", deadline))
	return nil
}

// WalkToTableSystem carries plates out to the floor. The waiter's distance
// from the kitchen grows every tick until the walk timer expires and the table
// starts dining. A cold plate costs a fixed happiness penalty.
// Phase 6 (Delivery), after the kitchen walk.
type WalkToTableSystem struct {
	deps *Deps
}

func NewWalkToTableSystem(deps *Deps) *WalkToTableSystem {
	return &WalkToTableSystem{deps: deps}
}

func (s *WalkToTableSystem) Phase() coresys.Phase { return coresys.PhaseDelivery }

func (s *WalkToTableSystem) Update(dt time.Duration) {
	d := s.deps
	step := d.Rules.WaiterSpeed * dt.Seconds()
	ecs.Each2(d.World.Waiters, d.World.Distances, func(waiter ecs.EntityID, w *component.Waiter, dist *component.DistanceFromKitchen) {
		if w.Status != component.WaiterWalkingToTable {
			return
		}
		dist.Value += step

		tm, ok := d.World.Timers.Get(waiter)
		if !ok {
			d.breach("walk_to_table", waiter, errNoTimer)
			return
		}
		if !tm.Expired() {
			return
		}
		if err := s.serve(waiter, w); err != nil {
			d.breach("walk_to_table", waiter, err)
		}
	})
}

func (s *WalkToTableSystem) serve(waiter ecs.EntityID, w *component.Waiter) error {
	d := s.deps
	t, err := d.World.Table(w.Table)
	if err != nil {
		return err
	}
	p, err := d.World.Plate(w.Plate)
	if err != nil {
		return err
	}
	tc, ok := d.World.Temperatures.Get(w.Plate)
	if !ok {
		return fmt.Errorf("serve plate %d: %w: no temperature", w.Plate.Index(), world.ErrInvariant)
	}
	table, plate := w.Table, w.Plate

	t.Plate = plate
	t.Waiter = ecs.None
	w.Table = ecs.None
	w.Plate = ecs.None
	p.Waiter = ecs.None
	w.Status = component.WaiterIdle
	p.Status = component.PlateInUse
	t.Status = component.TableDining
	d.World.Timers.Remove(waiter)
	d.World.StartTimer(table, d.Rules.DiningTime)

	temp := tc.Value
	cold := temp < d.Rules.PlateTemperatureThreshold
	if cold {
		t.ColdPlate = true
		if h, ok := d.World.Happiness.Get(table); ok {
			h.Value = clamp01(h.Value - d.Rules.ColdPlateHappinessPenalty)
		}
	}

	event.Emit(d.Bus, event.PlateDelivered{Plate: plate, Table: table, Temperature: temp, Cold: cold})
	d.Log.Debug("plate served",
		zap.Uint32("waiter", waiter.Index()),
		zap.Uint32("table", table.Index()),
		zap.Float64("temperature", temp),
		zap.Bool("cold", cold))
	return nil
}
