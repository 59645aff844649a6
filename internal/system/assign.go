package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// match pairs requests with idle resources one to one, in handle order.
// Both lists are snapshots taken before any mutation, so a resource claimed
// earlier in the pass is never offered again. Unmatched requests wait for the
// next tick.
func match(requests, idle []ecs.EntityID, assign func(req, res ecs.EntityID)) int {
	n := min(len(requests), len(idle))
	for i := 0; i < n; i++ {
		assign(requests[i], idle[i])
	}
	return n
}

// AssignChefSystem hands each unassigned table to an idle chef.
// Phase 3 (Kitchen), first in the phase.
type AssignChefSystem struct {
	deps *Deps
}

func NewAssignChefSystem(deps *Deps) *AssignChefSystem {
	return &AssignChefSystem{deps: deps}
}

func (s *AssignChefSystem) Phase() coresys.Phase { return coresys.PhaseKitchen }

func (s *AssignChefSystem) Update(_ time.Duration) {
	d := s.deps
	waiting := ecs.Filter(d.World.Tables, func(_ ecs.EntityID, t *component.Table) bool {
		return t.Status == component.TableUnassigned
	})
	if len(waiting) == 0 {
		return
	}
	idle := ecs.Filter(d.World.Chefs, func(_ ecs.EntityID, c *component.Chef) bool {
		return c.Status == component.ChefIdle
	})

	match(waiting, idle, func(table, chef ecs.EntityID) {
		t, _ := d.World.Tables.Get(table)
		c, _ := d.World.Chefs.Get(chef)

		c.Table = table
		c.Status = component.ChefCooking
		t.Status = component.TableWaiting
		t.Chef = chef

		event.Emit(d.Bus, event.ChefAssigned{Chef: chef, Table: table})
		d.Log.Debug("chef assigned",
			zap.Uint32("chef", chef.Index()),
			zap.Uint32("table", table.Index()))
	})
}

// AssignWaiterSystem hands each ready, unclaimed plate to an idle waiter.
// Phase 4 (Floor).
type AssignWaiterSystem struct {
	deps *Deps
}

func NewAssignWaiterSystem(deps *Deps) *AssignWaiterSystem {
	return &AssignWaiterSystem{deps: deps}
}

func (s *AssignWaiterSystem) Phase() coresys.Phase { return coresys.PhaseFloor }

func (s *AssignWaiterSystem) Update(_ time.Duration) {
	d := s.deps
	ready := ecs.Filter(d.World.Plates, func(plate ecs.EntityID, p *component.Plate) bool {
		if p.Status != component.PlateReady || !p.Waiter.IsZero() || p.Table.IsZero() {
			return false
		}
		// A plate whose table is gone must not hold a waiter for the tick.
		if _, err := d.World.Table(p.Table); err != nil {
			d.breach("assign_waiter", plate, err)
			return false
		}
		return true
	})
	if len(ready) == 0 {
		return
	}
	idle := ecs.Filter(d.World.Waiters, func(_ ecs.EntityID, w *component.Waiter) bool {
		return w.Status == component.WaiterIdle
	})

	match(ready, idle, func(plate, waiter ecs.EntityID) {
		p, _ := d.World.Plates.Get(plate)
		t, _ := d.World.Table(p.Table)
		w, _ := d.World.Waiters.Get(waiter)

		w.Table = p.Table
		w.Status = component.WaiterWalkingToKitchen
		p.Waiter = waiter
		t.Waiter = waiter

		event.Emit(d.Bus, event.WaiterAssigned{Waiter: waiter, Plate: plate, Table: p.Table})
		d.Log.Debug("waiter assigned",
			zap.Uint32("waiter", waiter.Index()),
			zap.Uint32("plate", plate.Index()),
			zap.Uint32("table", p.Table.Index()))
	})
}
