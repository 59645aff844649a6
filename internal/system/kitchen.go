package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// CreatePlateSystem starts a plate for every cooking chef that has none.
// Phase 3 (Kitchen), after chef assignment. Cook time scales with the number
// of guests at the chef's table.
type CreatePlateSystem struct {
	deps *Deps
}

func NewCreatePlateSystem(deps *Deps) *CreatePlateSystem {
	return &CreatePlateSystem{deps: deps}
}

func (s *CreatePlateSystem) Phase() coresys.Phase { return coresys.PhaseKitchen }

func (s *CreatePlateSystem) Update(_ time.Duration) {
	d := s.deps
	d.World.Chefs.Each(func(chef ecs.EntityID, c *component.Chef) {
		if c.Status != component.ChefCooking || !c.Plate.IsZero() {
			return
		}
		if _, err := d.World.Table(c.Table); err != nil {
			d.breach("create_plate", chef, err)
			return
		}

		size := d.World.PartySize(c.Table)
		plate := d.World.NewPlate(chef)
		c.Plate = plate
		deadline := d.Formulas.CookTime(size, d.Rules.PlatePreparationTime)
		d.World.StartTimer(chef, deadline)

		d.Log.Debug("plate started",
			zap.Uint32("chef", chef.Index()),
			zap.Uint32("table", c.Table.Index()),
			zap.Int("party_size", size),
			zap.Float64("cook_time", deadline))
	})
}

// PreparePlateSystem finishes plates whose cook timer expired. The plate is
// bound to its table at full temperature and the chef goes back to idle.
// Phase 3 (Kitchen), after plate creation.
type PreparePlateSystem struct {
	deps *Deps
}

func NewPreparePlateSystem(deps *Deps) *PreparePlateSystem {
	return &PreparePlateSystem{deps: deps}
}

func (s *PreparePlateSystem) Phase() coresys.Phase { return coresys.PhaseKitchen }

func (s *PreparePlateSystem) Update(_ time.Duration) {
	d := s.deps
	ecs.Each2(d.World.Chefs, d.World.Timers, func(chef ecs.EntityID, c *component.Chef, tm *component.Timer) {
		if c.Status != component.ChefCooking || c.Plate.IsZero() || !tm.Expired() {
			return
		}
		p, err := d.World.Plate(c.Plate)
		if err != nil {
			d.breach("prepare_plate", chef, err)
			return
		}
		t, err := d.World.Table(c.Table)
		if err != nil {
			d.breach("prepare_plate", chef, err)
			return
		}

		plate, table := c.Plate, c.Table
		p.Table = table
		p.Status = component.PlateReady
		d.World.Temperatures.Set(plate, &component.Temperature{Value: d.Rules.PlateInitialTemperature})

		c.Status = component.ChefIdle
		c.Table = ecs.None
		c.Plate = ecs.None
		d.World.Timers.Remove(chef)
		t.Chef = ecs.None

		event.Emit(d.Bus, event.PlateReady{Plate: plate, Table: table, CookTime: tm.Deadline})
		d.Log.Debug("plate ready",
			zap.Uint32("chef", chef.Index()),
			zap.Uint32("plate", plate.Index()),
			zap.Uint32("table", table.Index()))
	})
}
