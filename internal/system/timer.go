package system

import (
	"time"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/world"
)

// TimerSystem advances every timer by the tick's elapsed time. Phase 1
// (Timers). Timers are never removed here; the rule that started a timer
// removes it once it has acted on expiry.
type TimerSystem struct {
	world *world.State
}

func NewTimerSystem(ws *world.State) *TimerSystem {
	return &TimerSystem{world: ws}
}

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *TimerSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.world.Timers.Each(func(_ ecs.EntityID, t *component.Timer) {
		t.Elapsed += sec
	})
}
