package world

import (
	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/core/ecs"
)

// State is the authoritative dining-room state: the ECS world plus one typed
// store per component. Accessed only from the simulation loop goroutine, no
// locks needed.
type State struct {
	ecs *ecs.World

	Tables    *ecs.PtrComponentStore[component.Table]
	Positions *ecs.PtrComponentStore[component.Position]
	Happiness *ecs.PtrComponentStore[component.Happiness]
	Guests    *ecs.PtrComponentStore[component.Guest]

	Chefs     *ecs.PtrComponentStore[component.Chef]
	Waiters   *ecs.PtrComponentStore[component.Waiter]
	Distances *ecs.PtrComponentStore[component.DistanceFromKitchen]

	Plates       *ecs.PtrComponentStore[component.Plate]
	Temperatures *ecs.PtrComponentStore[component.Temperature]

	Timers *ecs.PtrComponentStore[component.Timer]

	// Root scopes grouping each entity kind, so the floor, the brigade and the
	// pass can be listed and torn down as units.
	tableRoot  ecs.EntityID
	chefRoot   ecs.EntityID
	waiterRoot ecs.EntityID
	plateRoot  ecs.EntityID
}

func NewState() *State {
	s := &State{
		ecs:          ecs.NewWorld(),
		Tables:       ecs.NewPtrComponentStore[component.Table](),
		Positions:    ecs.NewPtrComponentStore[component.Position](),
		Happiness:    ecs.NewPtrComponentStore[component.Happiness](),
		Guests:       ecs.NewPtrComponentStore[component.Guest](),
		Chefs:        ecs.NewPtrComponentStore[component.Chef](),
		Waiters:      ecs.NewPtrComponentStore[component.Waiter](),
		Distances:    ecs.NewPtrComponentStore[component.DistanceFromKitchen](),
		Plates:       ecs.NewPtrComponentStore[component.Plate](),
		Temperatures: ecs.NewPtrComponentStore[component.Temperature](),
		Timers:       ecs.NewPtrComponentStore[component.Timer](),
	}
	s.ecs.Registry().Register(
		s.Tables, s.Positions, s.Happiness, s.Guests,
		s.Chefs, s.Waiters, s.Distances,
		s.Plates, s.Temperatures, s.Timers,
	)
	s.tableRoot = s.ecs.CreateEntity()
	s.chefRoot = s.ecs.CreateEntity()
	s.waiterRoot = s.ecs.CreateEntity()
	s.plateRoot = s.ecs.CreateEntity()
	return s
}

// ECS exposes the underlying entity world.
func (s *State) ECS() *ecs.World { return s.ecs }

// Populate builds the static part of the restaurant: one table per layout
// position, then the chefs and waiters. Returns the created table handles.
func (s *State) Populate(layout []component.Position, chefs, waiters int) []ecs.EntityID {
	tables := make([]ecs.EntityID, 0, len(layout))
	for _, pos := range layout {
		tables = append(tables, s.AddTable(pos))
	}
	for i := 0; i < chefs; i++ {
		s.AddChef()
	}
	for i := 0; i < waiters; i++ {
		s.AddWaiter()
	}
	return tables
}

// AddTable creates an unoccupied table at pos.
func (s *State) AddTable(pos component.Position) ecs.EntityID {
	id := s.ecs.CreateChild(s.tableRoot)
	s.Tables.Set(id, &component.Table{Status: component.TableUnoccupied})
	p := pos
	s.Positions.Set(id, &p)
	return id
}

// AddChef creates an idle chef.
func (s *State) AddChef() ecs.EntityID {
	id := s.ecs.CreateChild(s.chefRoot)
	s.Chefs.Set(id, &component.Chef{Status: component.ChefIdle})
	return id
}

// AddWaiter creates an idle waiter standing at the kitchen.
func (s *State) AddWaiter() ecs.EntityID {
	id := s.ecs.CreateChild(s.waiterRoot)
	s.Waiters.Set(id, &component.Waiter{Status: component.WaiterIdle})
	s.Distances.Set(id, &component.DistanceFromKitchen{})
	return id
}

// SeatGuest creates one diner as a child of table.
func (s *State) SeatGuest(table ecs.EntityID) ecs.EntityID {
	id := s.ecs.CreateChild(table)
	s.Guests.Set(id, &component.Guest{Table: table})
	return id
}

// NewPlate creates a Preparing plate on the pass, credited to chef.
func (s *State) NewPlate(chef ecs.EntityID) ecs.EntityID {
	id := s.ecs.CreateChild(s.plateRoot)
	s.Plates.Set(id, &component.Plate{Status: component.PlatePreparing, Chef: chef})
	return id
}

// PartySize is the number of guests seated at table. Guests already queued
// for removal this tick still count; they are gone after cleanup.
func (s *State) PartySize(table ecs.EntityID) int {
	return s.ecs.ChildCount(table)
}

// Table dereferences a table handle.
func (s *State) Table(id ecs.EntityID) (*component.Table, error) {
	if !s.ecs.Alive(id) {
		return nil, missing("table", id)
	}
	t, ok := s.Tables.Get(id)
	if !ok {
		return nil, missing("table", id)
	}
	return t, nil
}

// Chef dereferences a chef handle.
func (s *State) Chef(id ecs.EntityID) (*component.Chef, error) {
	if !s.ecs.Alive(id) {
		return nil, missing("chef", id)
	}
	c, ok := s.Chefs.Get(id)
	if !ok {
		return nil, missing("chef", id)
	}
	return c, nil
}

// Waiter dereferences a waiter handle.
func (s *State) Waiter(id ecs.EntityID) (*component.Waiter, error) {
	if !s.ecs.Alive(id) {
		return nil, missing("waiter", id)
	}
	w, ok := s.Waiters.Get(id)
	if !ok {
		return nil, missing("waiter", id)
	}
	return w, nil
}

// Plate dereferences a plate handle. A plate queued for destruction is
// already gone as far as the rules are concerned.
func (s *State) Plate(id ecs.EntityID) (*component.Plate, error) {
	if !s.ecs.Alive(id) || s.ecs.Pending(id) {
		return nil, missing("plate", id)
	}
	p, ok := s.Plates.Get(id)
	if !ok {
		return nil, missing("plate", id)
	}
	return p, nil
}

// PlateForTable finds the single live plate cooked for table. Zero or more
// than one is an invariant breach.
func (s *State) PlateForTable(table ecs.EntityID) (ecs.EntityID, error) {
	found := ecs.None
	n := 0
	s.Plates.Each(func(id ecs.EntityID, p *component.Plate) {
		if p.Table == table && !s.ecs.Pending(id) {
			found = id
			n++
		}
	})
	switch n {
	case 0:
		return ecs.None, invariantf("no plate for table %d", table.Index())
	case 1:
		return found, nil
	default:
		return ecs.None, invariantf("%d plates for table %d", n, table.Index())
	}
}

// StartTimer attaches a fresh timer to id, replacing any previous one.
func (s *State) StartTimer(id ecs.EntityID, deadline float64) *component.Timer {
	t := &component.Timer{Deadline: deadline}
	s.Timers.Set(id, t)
	return t
}

// Destroy queues an entity, and its children, for end-of-tick removal.
func (s *State) Destroy(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// DismissParty queues every guest at table for removal.
func (s *State) DismissParty(table ecs.EntityID) {
	s.ecs.DestroyChildren(table)
}

// Flush applies queued destruction. Called by the cleanup system.
func (s *State) Flush() int {
	return s.ecs.FlushDestroyQueue()
}

// TableIDs lists tables in creation order.
func (s *State) TableIDs() []ecs.EntityID { return s.ecs.Children(s.tableRoot) }

// ChefIDs lists chefs in creation order.
func (s *State) ChefIDs() []ecs.EntityID { return s.ecs.Children(s.chefRoot) }

// WaiterIDs lists waiters in creation order.
func (s *State) WaiterIDs() []ecs.EntityID { return s.ecs.Children(s.waiterRoot) }

// PlateCount is the number of plates currently on the pass or the floor.
func (s *State) PlateCount() int { return s.ecs.ChildCount(s.plateRoot) }
