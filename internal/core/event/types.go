package event

import "github.com/kitchensim/server/internal/core/ecs"

// PartyArrived is emitted when a party is seated at a free table.
type PartyArrived struct {
	Table     ecs.EntityID
	PartySize int
}

// ChefAssigned is emitted when an idle chef takes an unassigned table.
type ChefAssigned struct {
	Chef  ecs.EntityID
	Table ecs.EntityID
}

// PlateReady is emitted when a plate leaves the stove.
type PlateReady struct {
	Plate    ecs.EntityID
	Table    ecs.EntityID
	CookTime float64 // seconds
}

// WaiterAssigned is emitted when an idle waiter takes a ready plate.
type WaiterAssigned struct {
	Waiter ecs.EntityID
	Plate  ecs.EntityID
	Table  ecs.EntityID
}

// PlateDelivered is emitted when a plate reaches its table.
type PlateDelivered struct {
	Plate       ecs.EntityID
	Table       ecs.EntityID
	Temperature float64
	Cold        bool
}

// PartyLeft is emitted when a dining party finishes and the table frees up.
type PartyLeft struct {
	Table     ecs.EntityID
	PartySize int
	Happiness float64
	Rating    float64
}
