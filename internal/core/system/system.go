package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents    Phase = iota // 0: dispatch last tick's events
	PhaseTimers                 // 1: advance every timer by dt
	PhaseArrival                // 2: seat new parties (interval-gated)
	PhaseKitchen                // 3: assign chefs, start and finish plates
	PhaseFloor                  // 4: assign waiters to ready plates
	PhaseDecay                  // 5: happiness and temperature cooldown
	PhaseDelivery               // 6: waiter walks
	PhaseDeparture              // 7: finished tables release everything
	PhaseReport                 // 8: metrics sampling
	PhaseCleanup                // 9: destroy queued entities
)

var phaseNames = [...]string{
	"events", "timers", "arrival", "kitchen", "floor",
	"decay", "delivery", "departure", "report", "cleanup",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Interval runs the wrapped system once each time the accumulated tick time
// reaches the period. It never fires on the tick it was created; a backlog
// larger than one period is carried, not replayed, so one slow tick cannot
// trigger a burst.
type Interval struct {
	inner  System
	period time.Duration
	acc    time.Duration
}

// Every wraps s so it fires on a fixed period of simulated time.
func Every(period time.Duration, s System) *Interval {
	return &Interval{inner: s, period: period}
}

func (iv *Interval) Phase() Phase { return iv.inner.Phase() }

func (iv *Interval) Update(dt time.Duration) {
	iv.acc += dt
	if iv.period <= 0 || iv.acc < iv.period {
		return
	}
	iv.acc -= iv.period
	iv.inner.Update(iv.period)
}
