package system

import (
	"time"

	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 9 (Cleanup). Guests and plates released during the tick disappear
// here, after every rule has run.
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Flush()
}
