// Package core holds the viewer's host-side event queue and loop state.
package core

// Event represents a viewer event.
type Event struct {
	Type    EventType
	Frame   uint64
	Payload any
}

type EventType uint16

const (
	EvtRegenerateRequested EventType = iota
	EvtGridReplaced
	EvtAssetsLoaded
	EvtAssetsFailed
	EvtModeChanged
	EvtLayersChanged
	EvtExportRequested
	EvtExported
	EvtResizeRequested
)

var eventNames = [...]string{
	EvtRegenerateRequested: "regenerate-requested",
	EvtGridReplaced:        "grid-replaced",
	EvtAssetsLoaded:        "assets-loaded",
	EvtAssetsFailed:        "assets-failed",
	EvtModeChanged:         "mode-changed",
	EvtLayersChanged:       "layers-changed",
	EvtExportRequested:     "export-requested",
	EvtExported:            "exported",
	EvtResizeRequested:     "resize-requested",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// EventBus queues events and dispatches them between frames, so handlers
// never run while a frame is being drawn.
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events.
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Events emitted by handlers are
// queued for the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
}
