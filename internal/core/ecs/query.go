package ecs

// Each2 iterates over entities that have both component A and B, in
// ascending EntityID order. The smaller store drives the walk.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for _, id := range sa.IDs() {
			a, okA := sa.data[id]
			b, okB := sb.data[id]
			if okA && okB {
				fn(id, a, b)
			}
		}
		return
	}
	for _, id := range sb.IDs() {
		a, okA := sa.data[id]
		b, okB := sb.data[id]
		if okA && okB {
			fn(id, a, b)
		}
	}
}

// Filter returns the sorted IDs in s whose component satisfies pred. Used by
// rules that must snapshot their candidates before mutating anything.
func Filter[T any](s *PtrComponentStore[T], pred func(EntityID, *T) bool) []EntityID {
	out := make([]EntityID, 0, 8)
	s.Each(func(id EntityID, c *T) {
		if pred(id, c) {
			out = append(out, id)
		}
	})
	return out
}
