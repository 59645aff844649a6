package component

// TableStatus is the closed set of states a table cycles through:
// Unoccupied → Unassigned → Waiting → Dining → Unoccupied.
type TableStatus uint8

const (
	TableUnoccupied TableStatus = iota
	TableUnassigned             // party seated, no chef yet
	TableWaiting                // chef cooking, plate not delivered
	TableDining
)

func (s TableStatus) String() string {
	switch s {
	case TableUnoccupied:
		return "unoccupied"
	case TableUnassigned:
		return "unassigned"
	case TableWaiting:
		return "waiting"
	case TableDining:
		return "dining"
	}
	return "invalid"
}

type ChefStatus uint8

const (
	ChefIdle ChefStatus = iota
	ChefCooking
)

func (s ChefStatus) String() string {
	switch s {
	case ChefIdle:
		return "idle"
	case ChefCooking:
		return "cooking"
	}
	return "invalid"
}

type WaiterStatus uint8

const (
	WaiterIdle WaiterStatus = iota
	WaiterWalkingToKitchen
	WaiterWalkingToTable
)

func (s WaiterStatus) String() string {
	switch s {
	case WaiterIdle:
		return "idle"
	case WaiterWalkingToKitchen:
		return "walking_to_kitchen"
	case WaiterWalkingToTable:
		return "walking_to_table"
	}
	return "invalid"
}

// PlateStatus only moves forward: Preparing → Ready → InUse.
type PlateStatus uint8

const (
	PlatePreparing PlateStatus = iota
	PlateReady
	PlateInUse
)

func (s PlateStatus) String() string {
	switch s {
	case PlatePreparing:
		return "preparing"
	case PlateReady:
		return "ready"
	case PlateInUse:
		return "in_use"
	}
	return "invalid"
}
