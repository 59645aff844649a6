package system

import (
	"math"
	"time"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// HappinessSystem lets waiting parties grow impatient: happiness falls
// linearly until the meal is served, and never below zero. Dining tables are
// frozen. Phase 5 (Decay).
type HappinessSystem struct {
	deps *Deps
}

func NewHappinessSystem(deps *Deps) *HappinessSystem {
	return &HappinessSystem{deps: deps}
}

func (s *HappinessSystem) Phase() coresys.Phase { return coresys.PhaseDecay }

func (s *HappinessSystem) Update(dt time.Duration) {
	drop := s.deps.Rules.HappinessCooldown * dt.Seconds()
	ecs.Each2(s.deps.World.Tables, s.deps.World.Happiness, func(_ ecs.EntityID, t *component.Table, h *component.Happiness) {
		if t.Status == component.TableDining {
			return
		}
		h.Value = clamp01(h.Value - drop)
	})
}

// TemperatureSystem cools every plate toward room temperature with an Euler
// step of first-order exponential decay. The step factor is capped at 1, so
// a plate can reach ambient but never cross it. Phase 5 (Decay).
type TemperatureSystem struct {
	deps *Deps
}

func NewTemperatureSystem(deps *Deps) *TemperatureSystem {
	return &TemperatureSystem{deps: deps}
}

func (s *TemperatureSystem) Phase() coresys.Phase { return coresys.PhaseDecay }

func (s *TemperatureSystem) Update(dt time.Duration) {
	r := s.deps.Rules
	k := math.Min(r.PlateCooldownFactor*dt.Seconds(), 1)
	s.deps.World.Temperatures.Each(func(_ ecs.EntityID, t *component.Temperature) {
		t.Value -= (t.Value - r.RoomTemperature) * k
	})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
