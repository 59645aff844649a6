package system

import (
	"time"

	coresys "github.com/kitchensim/server/internal/core/system"
)

// RegisterAll wires every restaurant rule into the runner. Registration order
// inside a phase is the evaluation order within a tick.
func RegisterAll(r *coresys.Runner, d *Deps, observers ...Observer) *ArrivalSystem {
	arrival := NewArrivalSystem(d)
	every := time.Duration(d.Rules.ArrivalInterval * float64(time.Second))

	r.Register(
		NewEventSystem(d.Bus),
		NewTimerSystem(d.World),
		coresys.Every(every, arrival),
		NewAssignChefSystem(d),
		NewCreatePlateSystem(d),
		NewPreparePlateSystem(d),
		NewAssignWaiterSystem(d),
		NewHappinessSystem(d),
		NewTemperatureSystem(d),
		NewWalkToKitchenSystem(d),
		NewWalkToTableSystem(d),
		NewDepartureSystem(d),
		NewReportSystem(d, observers...),
		NewCleanupSystem(d.World),
	)
	return arrival
}
