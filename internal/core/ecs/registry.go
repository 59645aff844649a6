package ecs

// Registry tracks every component store of a world so destroying an entity
// strips all of its components in one call.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
	}
}

// Register adds component stores to the registry.
func (r *Registry) Register(stores ...Removable) {
	r.stores = append(r.stores, stores...)
}

// Len returns how many stores are registered.
func (r *Registry) Len() int { return len(r.stores) }

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
