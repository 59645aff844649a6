package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems registered in the
// same phase keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
	elapsed time.Duration
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s ...System) {
	r.systems = append(r.systems, s...)
	r.sorted = false
}

// Tick runs every system once with the elapsed simulated time.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.ticks++
	r.elapsed += dt
}

// TickPhase runs only the systems of one phase. Used by tests that want to
// drive a single rule in isolation.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Systems lists the registered systems in execution order.
func (r *Runner) Systems() []System {
	r.ensureSorted()
	return append([]System(nil), r.systems...)
}

// Ticks returns how many full ticks have run.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Elapsed returns the total simulated time advanced by Tick.
func (r *Runner) Elapsed() time.Duration { return r.elapsed }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
