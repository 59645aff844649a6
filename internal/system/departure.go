package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// DepartureSystem ends a meal once the dining timer expires. Guest departure
// and table release happen in one pass so the plate is never read after it
// is queued for destruction. Destruction is deferred to cleanup.
// Phase 7 (Departure).
type DepartureSystem struct {
	deps *Deps
}

func NewDepartureSystem(deps *Deps) *DepartureSystem {
	return &DepartureSystem{deps: deps}
}

func (s *DepartureSystem) Phase() coresys.Phase { return coresys.PhaseDeparture }

func (s *DepartureSystem) Update(_ time.Duration) {
	d := s.deps
	ecs.Each2(d.World.Tables, d.World.Timers, func(table ecs.EntityID, t *component.Table, tm *component.Timer) {
		if t.Status != component.TableDining || !tm.Expired() {
			return
		}

		size := d.World.PartySize(table)
		happiness := 0.0
		if h, ok := d.World.Happiness.Get(table); ok {
			happiness = h.Value
		}
		rating := d.Formulas.RateVisit(happiness, size, t.ColdPlate)

		// Guest departure.
		d.World.DismissParty(table)
		d.World.Happiness.Remove(table)

		// Table release.
		if _, err := d.World.Plate(t.Plate); err != nil {
			d.breach("departure", table, err)
		} else {
			d.World.Destroy(t.Plate)
		}
		t.Plate = ecs.None
		t.ColdPlate = false
		t.Status = component.TableUnoccupied
		d.World.Timers.Remove(table)

		event.Emit(d.Bus, event.PartyLeft{
			Table:     table,
			PartySize: size,
			Happiness: happiness,
			Rating:    rating,
		})
		d.Log.Debug("party left",
			zap.Uint32("table", table.Index()),
			zap.Int("party_size", size),
			zap.Float64("happiness", happiness),
			zap.Float64("rating", rating))
	})
}
