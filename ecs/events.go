package ecs

// Event is something a system reported during one Update. Frame is the
// frame clock at the time it was emitted.
type Event struct {
	Type  string
	Frame uint64
	Data  any
}

// EventQueue collects the events of the current frame. Events emitted while
// systems run stay readable after Update returns and are dropped when the
// next Update starts.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns the queued events in emit order and empties the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) reset() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}

// Emit queues an event stamped with the current frame.
func (w *World) Emit(typ string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: typ, Frame: w.time.Frame, Data: data})
}
