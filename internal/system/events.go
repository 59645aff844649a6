package system

import (
	"time"

	"github.com/kitchensim/server/internal/core/event"
	coresys "github.com/kitchensim/server/internal/core/system"
)

// EventSystem delivers the previous tick's events. Phase 0 (Events).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
