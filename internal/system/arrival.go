package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// ArrivalSystem seats a new party at a free table. Phase 2 (Arrival). It is
// registered behind coresys.Every, so Update runs once per arrival interval
// rather than every tick.
type ArrivalSystem struct {
	deps *Deps
}

func NewArrivalSystem(deps *Deps) *ArrivalSystem {
	return &ArrivalSystem{deps: deps}
}

func (s *ArrivalSystem) Phase() coresys.Phase { return coresys.PhaseArrival }

func (s *ArrivalSystem) Update(_ time.Duration) {
	d := s.deps
	free := ecs.Filter(d.World.Tables, func(_ ecs.EntityID, t *component.Table) bool {
		return t.Status == component.TableUnoccupied
	})
	if len(free) == 0 {
		d.Log.Debug("arrival turned away, no free table")
		return
	}
	table := free[d.Rand.Intn(len(free))]
	size := 1 + d.Rand.Intn(d.Rules.MaxPartySize)
	if err := s.Seat(table, size); err != nil {
		d.breach("arrival", table, err)
	}
}

// Seat puts a party of size guests at an unoccupied table.
func (s *ArrivalSystem) Seat(table ecs.EntityID, size int) error {
	d := s.deps
	t, err := d.World.Table(table)
	if err != nil {
		return err
	}
	if t.Status != component.TableUnoccupied {
		return fmt.Errorf("seat party at table %d: table is %s", table.Index(), t.Status)
	}
	if size < 1 {
		return fmt.Errorf("seat party at table %d: party size %d", table.Index(), size)
	}

	t.Status = component.TableUnassigned
	for i := 0; i < size; i++ {
		d.World.SeatGuest(table)
	}
	d.World.Happiness.Set(table, &component.Happiness{Value: 1})

	event.Emit(d.Bus, event.PartyArrived{Table: table, PartySize: size})
	d.Log.Debug("party seated",
		zap.Uint32("table", table.Index()),
		zap.Int("party_size", size))
	return nil
}
