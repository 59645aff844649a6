package component

import "github.com/kitchensim/server/internal/core/ecs"

// Plate is one party's meal. Table is attached when cooking finishes; Waiter
// only while the plate is claimed or carried.
type Plate struct {
	Status PlateStatus
	Table  ecs.EntityID
	Waiter ecs.EntityID
	Chef   ecs.EntityID // who cooked it, for logging
}

// Temperature of a plate in degrees Celsius. Attached when the plate is ready.
type Temperature struct {
	Value float64
}
