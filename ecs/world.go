package ecs

import (
	"fmt"

	"github.com/milk9111/rigid2d/ecs/component"
)

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	order    []Entity
	attached map[Entity][]component.ComponentID
	stores   map[component.ComponentID]*SparseSet
	inactive map[Entity]bool
	started  map[Entity]bool

	scheduler Scheduler
	events    EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		attached: make(map[Entity][]component.ComponentID),
		stores:   make(map[component.ComponentID]*SparseSet),
		inactive: make(map[Entity]bool),
		started:  make(map[Entity]bool),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	e := w.entities.create()
	w.order = append(w.order, e)
	return e
}

// DestroyEntity runs Destroyer hooks, drops every component and frees the
// entity slot. It returns false for handles that are not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, c := range w.Components(e) {
		if d, ok := c.(Destroyer); ok {
			d.Destroy(w, e)
		}
	}
	for _, id := range w.attached[e] {
		w.stores[id].Remove(e)
	}
	delete(w.attached, e)
	delete(w.inactive, e)
	delete(w.started, e)
	for i, other := range w.order {
		if other == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// SetActive toggles whether an entity takes part in updates and scene
// queries.
func (w *World) SetActive(e Entity, active bool) {
	if !w.IsAlive(e) {
		return
	}
	if active {
		delete(w.inactive, e)
		return
	}
	w.inactive[e] = true
}

func (w *World) IsActive(e Entity) bool {
	return w.IsAlive(e) && !w.inactive[e]
}

// Entities returns the alive entities in creation order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.order...)
}

// AddComponent attaches or replaces the value of a component kind.
func (w *World) AddComponent(e Entity, id component.ComponentID, v any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add component %d to %v: %w", id, e, component.ErrEntityNotAlive)
	}
	store, ok := w.stores[id]
	if !ok {
		store = &SparseSet{}
		w.stores[id] = store
	}
	if !store.Has(e) {
		w.attached[e] = append(w.attached[e], id)
	}
	store.Set(e, v)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	store, ok := w.stores[id]
	if !ok || !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	_, ok := w.GetComponent(e, id)
	return ok
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.IsAlive(e) {
		return false
	}
	store, ok := w.stores[id]
	if !ok || !store.Remove(e) {
		return false
	}
	ids := w.attached[e]
	for i, other := range ids {
		if other == id {
			w.attached[e] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true
}

// Components returns the entity's component values in attach order.
func (w *World) Components(e Entity) []any {
	if !w.IsAlive(e) {
		return nil
	}
	ids := w.attached[e]
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.stores[id].Get(e))
	}
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
