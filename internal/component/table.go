package component

import "github.com/kitchensim/server/internal/core/ecs"

// Table is a seat group on the dining floor. Tables live forever; only their
// status and references churn. Guests are ECS children of the table.
type Table struct {
	Status TableStatus
	Plate  ecs.EntityID // set from delivery until the party leaves
	Chef   ecs.EntityID // set while a chef cooks for this table
	Waiter ecs.EntityID // set while a waiter carries this table's plate

	ColdPlate bool // the delivered plate was below the threshold
}

// Position is a table's floor coordinate in meters. The kitchen is the origin.
type Position struct {
	X float64
	Y float64
}

// Happiness of the party at a table, in [0,1]. Present only while guests are seated.
type Happiness struct {
	Value float64
}

// Guest is one diner. Pure tag plus a back reference to its table.
type Guest struct {
	Table ecs.EntityID
}
