package ecs

import "fmt"

// UpdateContext is handed to every Updater once per frame.
type UpdateContext struct {
	DeltaTime float64
	Frame     int
}

// Starter components run once, the first time World.Start sees them.
type Starter interface {
	Start(w *World, e Entity) error
}

// Updater components run once per frame on active entities.
type Updater interface {
	Update(w *World, e Entity, ctx *UpdateContext)
}

// Receiver components get messages broadcast to their entity.
type Receiver interface {
	Receive(w *World, e Entity, msg string)
}

// Destroyer components are told when their entity is destroyed.
type Destroyer interface {
	Destroy(w *World, e Entity)
}

// Start runs Starter hooks for every entity not started yet, in creation
// order and then attach order. The first failure aborts the pass.
func (w *World) Start() error {
	for _, e := range w.Entities() {
		if w.started[e] || !w.IsAlive(e) {
			continue
		}
		w.started[e] = true
		for _, c := range w.Components(e) {
			s, ok := c.(Starter)
			if !ok {
				continue
			}
			if err := s.Start(w, e); err != nil {
				return fmt.Errorf("ecs: start entity %v: %w", e, err)
			}
		}
	}
	return nil
}

// Update runs Updater hooks on active entities, then the systems, then
// drops undrained events.
func (w *World) Update(ctx *UpdateContext) {
	if w == nil {
		return
	}
	for _, e := range w.Entities() {
		if !w.IsActive(e) {
			continue
		}
		for _, c := range w.Components(e) {
			if u, ok := c.(Updater); ok {
				u.Update(w, e, ctx)
			}
		}
	}
	w.scheduler.Update(w)
	w.events.flush()
}

// BroadcastMessage hands msg to every Receiver on e and queues an Event
// for systems.
func (w *World) BroadcastMessage(e Entity, msg string) {
	if !w.IsAlive(e) {
		return
	}
	for _, c := range w.Components(e) {
		if r, ok := c.(Receiver); ok {
			r.Receive(w, e, msg)
		}
	}
	w.events.Push(Event{Type: msg, Data: e})
}
