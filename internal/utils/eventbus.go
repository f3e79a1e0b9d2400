package utils

// Event is a domain notification: services publish them, the websocket hub
// consumes them.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// EventBus bridges the HTTP write path and the websocket hub. Publish never
// blocks; when the buffer is full the event is dropped and the recipient
// catches up through the history endpoint on its next fetch.
type EventBus struct {
	events chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		events: make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	select {
	case eb.events <- Event{Event: event, Data: data}:
	default:
	}
}

// SubscribeCh exposes the event stream for a select loop; the hub is the
// single consumer.
func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
