package ecs

import (
	"time"

	"github.com/milk9111/vhscam/ecs/component"
)

// FrameTime is the clock reading systems see during one Update.
type FrameTime struct {
	Now   time.Time
	Delta time.Duration
	Frame uint64
}

// Seconds returns Delta as float seconds.
func (t FrameTime) Seconds() float64 {
	return t.Delta.Seconds()
}

// KindID is satisfied by every component.ComponentKind.
type KindID interface {
	ID() component.ComponentID
}

// World owns entities, components, and system order.
type World struct {
	entities   entityStore
	components map[component.ComponentID]*SparseSet
	scheduler  *Scheduler
	events     EventQueue
	onDestroy  []func(Entity)
	time       FrameTime
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		components: make(map[component.ComponentID]*SparseSet),
		scheduler:  NewScheduler(),
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Scheduler returns the system scheduler.
func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	return w.scheduler
}

// Activate runs the activate hook of every lifecycle system.
func (w *World) Activate() {
	if w == nil {
		return
	}
	w.scheduler.Activate(w)
}

// Deactivate runs the deactivate hook of every lifecycle system in reverse order.
func (w *World) Deactivate() {
	if w == nil {
		return
	}
	w.scheduler.Deactivate(w)
}

// Update drops the previous frame's undrained events and runs all systems
// once.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.reset()
	w.scheduler.Update(w)
}

// SetTime records the frame clock for the next Update.
func (w *World) SetTime(t FrameTime) {
	if w == nil {
		return
	}
	w.time = t
}

// Time returns the frame clock.
func (w *World) Time() FrameTime {
	if w == nil {
		return FrameTime{}
	}
	return w.time
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// OnDestroy registers fn to run whenever an entity is destroyed, before its
// components are dropped.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// First returns the first live entity holding kind.
func (w *World) First(kind KindID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	set := w.components[kind.ID()]
	if set.Len() == 0 {
		return 0, false
	}
	for _, id := range set.dense {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Query returns live entities holding every kind.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.components[k.ID()]
		if set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	// iterate the smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	var out []Entity
	for _, id := range sets[smallest].ids() {
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) set(id component.ComponentID) *SparseSet {
	s, ok := w.components[id]
	if !ok {
		s = &SparseSet{}
		w.components[id] = s
	}
	return s
}
