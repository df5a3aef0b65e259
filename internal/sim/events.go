package sim

import "fireworksgl/internal/vec3"

type EventType int

const (
	EventRocketLaunched EventType = iota
	EventRocketBurst
	EventRocketLost // left the screen before bursting
)

type Event struct {
	Type     EventType
	Position vec3.Vec3
	Children int // sparks requested by a burst
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the simulation thread.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
