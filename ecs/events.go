package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// Event types pushed by the movement systems.
const (
	EventHorizontalStateChanged = "horizontal_state_changed"
	EventVerticalStateChanged   = "vertical_state_changed"
	EventModuleMissing          = "module_missing"
)

// StateChangeEvent carries the entity and the state value it moved into.
type StateChangeEvent struct {
	Entity Entity
	From   string
	To     string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
