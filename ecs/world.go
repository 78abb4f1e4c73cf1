package ecs

import "github.com/milk9111/sidescroller-movement/ecs/component"

// World owns entities, component stores, and the per-frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*componentStore
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*componentStore)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gen {
		if e, ok := w.entities.entity(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

// AddComponent stores value under kind for e, replacing any previous value.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	s := w.stores[kind.ID()]
	if s == nil {
		s = newComponentStore(kind.ID())
		w.stores[kind.ID()] = s
	}
	s.set(e.id(), value)
	return nil
}

// GetComponent returns the raw value stored under kind for e.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	return w.stores[kind.ID()].get(e.id())
}

// HasComponent reports whether e carries kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.stores[kind.ID()].has(e.id())
}

// Query returns the live entities that carry every kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]*componentStore, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s == nil {
			return nil
		}
		stores = append(stores, s)
	}
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.len())
	for _, id := range smallest.dense {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		matched := true
		for _, s := range stores {
			if s != smallest && !s.has(id) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity carrying every kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// EndFrame drops any events nobody drained this frame.
func (w *World) EndFrame() {
	if w == nil {
		return
	}
	w.events.flush()
}
