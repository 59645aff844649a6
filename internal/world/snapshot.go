package world

import (
	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
)

// Snapshot is a point-in-time head count of the restaurant, used for metrics
// and the periodic status log.
type Snapshot struct {
	Tables  [4]int // indexed by component.TableStatus
	Chefs   [2]int // indexed by component.ChefStatus
	Waiters [3]int // indexed by component.WaiterStatus
	Plates  [3]int // indexed by component.PlateStatus
	Guests  int

	MeanHappiness   float64 // over tables with seated guests, 0 if none
	MeanTemperature float64 // over plates with a temperature, 0 if none
}

// Snapshot counts every entity by status.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	s.Tables.Each(func(_ ecs.EntityID, t *component.Table) {
		snap.Tables[t.Status]++
	})
	s.Chefs.Each(func(_ ecs.EntityID, c *component.Chef) {
		snap.Chefs[c.Status]++
	})
	s.Waiters.Each(func(_ ecs.EntityID, w *component.Waiter) {
		snap.Waiters[w.Status]++
	})
	s.Plates.Each(func(_ ecs.EntityID, p *component.Plate) {
		snap.Plates[p.Status]++
	})
	snap.Guests = s.Guests.Len()

	if n := s.Happiness.Len(); n > 0 {
		sum := 0.0
		s.Happiness.Each(func(_ ecs.EntityID, h *component.Happiness) { sum += h.Value })
		snap.MeanHappiness = sum / float64(n)
	}
	if n := s.Temperatures.Len(); n > 0 {
		sum := 0.0
		s.Temperatures.Each(func(_ ecs.EntityID, t *component.Temperature) { sum += t.Value })
		snap.MeanTemperature = sum / float64(n)
	}
	return snap
}

// IdleChefs is a shorthand for the chefs free to take a table.
func (snap Snapshot) IdleChefs() int { return snap.Chefs[component.ChefIdle] }

// IdleWaiters is a shorthand for the waiters free to take a plate.
func (snap Snapshot) IdleWaiters() int { return snap.Waiters[component.WaiterIdle] }
