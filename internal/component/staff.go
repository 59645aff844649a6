package component

import "github.com/kitchensim/server/internal/core/ecs"

// Chef cooks one plate at a time. Table and Plate are set iff Status is Cooking
// (Plate from the tick after assignment).
type Chef struct {
	Status ChefStatus
	Table  ecs.EntityID
	Plate  ecs.EntityID
}

// Waiter relays ready plates from the kitchen to tables.
type Waiter struct {
	Status WaiterStatus
	Table  ecs.EntityID
	Plate  ecs.EntityID // set once the plate is picked up
}

// DistanceFromKitchen is how far a waiter is from the pass, in meters.
type DistanceFromKitchen struct {
	Value float64
}
