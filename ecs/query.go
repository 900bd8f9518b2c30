package ecs

import "github.com/milk9111/rigid2d/ecs/component"

// Query returns entities that hold every listed component, in creation
// order.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	for _, e := range w.order {
		match := true
		for _, id := range ids {
			if !w.stores[id].Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity matching Query.
func (w *World) First(ids ...component.ComponentID) (Entity, bool) {
	matches := w.Query(ids...)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}
