package ecs

// IntersectEntities returns the entities present in both sets.
func IntersectEntities(a, b *SparseSet) []Entity {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]Entity, 0, a.Len())
	for _, e := range a.Entities() {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
