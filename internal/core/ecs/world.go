package ecs

import "slices"

// World is the top-level ECS container. It owns the entity pool, the component
// registry, parent/child grouping, and a deferred destruction queue flushed by
// the cleanup system at the end of each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	parents      map[EntityID]EntityID
	children     map[EntityID][]EntityID
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		parents:      make(map[EntityID]EntityID, 64),
		children:     make(map[EntityID][]EntityID, 32),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// CreateChild creates an entity grouped under parent. Destroying the parent
// destroys its children too.
func (w *World) CreateChild(parent EntityID) EntityID {
	id := w.pool.Create()
	w.parents[id] = parent
	w.children[parent] = append(w.children[parent], id)
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Parent returns the entity id was created under, or None.
func (w *World) Parent(id EntityID) EntityID {
	return w.parents[id]
}

// Children returns a copy of parent's live children in creation order.
func (w *World) Children(parent EntityID) []EntityID {
	return slices.Clone(w.children[parent])
}

// ChildCount returns the number of live children of parent, including
// children already queued for destruction this tick.
func (w *World) ChildCount(parent EntityID) int {
	return len(w.children[parent])
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Queuing the
// same entity twice, or a dead entity, is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	if _, ok := w.queued[id]; ok {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// DestroyChildren queues every child of parent for destruction.
func (w *World) DestroyChildren(parent EntityID) {
	for _, c := range w.children[parent] {
		w.MarkForDestruction(c)
	}
}

// Pending reports whether id is queued for destruction.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities, their children, and clears
// their components. Returns the number of entities destroyed.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for i := 0; i < len(w.destroyQueue); i++ {
		id := w.destroyQueue[i]
		// Children join the queue so they are flushed in the same pass.
		for _, c := range w.children[id] {
			w.MarkForDestruction(c)
		}
		w.detach(id)
		w.registry.RemoveAll(id)
		if w.pool.Destroy(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return n
}

func (w *World) detach(id EntityID) {
	delete(w.children, id)
	parent, ok := w.parents[id]
	if !ok {
		return
	}
	delete(w.parents, id)
	siblings := w.children[parent]
	if i := slices.Index(siblings, id); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(w.children, parent)
	} else {
		w.children[parent] = siblings
	}
}
