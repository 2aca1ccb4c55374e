package bus

// EventBus is a synchronous, in-process pub/sub bus for agent lifecycle events.
//
// Key characteristics:
// - Type-based fan-out: handlers subscribe by Event.Type() string.
// - Synchronous delivery in subscription order: Publish calls handlers in the caller goroutine.
// - Error aggregation: multiple handler errors are joined and returned from Publish.
// - The wildcard type "*" receives every event.
//
// All methods are safe for concurrent use, though the agent publishes from its tick loop only.
type EventBus interface {
	// Publish delivers the event to all active subscribers of event.Type() and
	// to wildcard subscribers.
	Publish(event Event) error
	// Subscribe registers a handler for a specific event type and returns a
	// Subscription handle that can be used to cancel later.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error
	// Metrics returns a snapshot of the delivery counters.
	Metrics() Metrics
}

// Event is an immutable message transported by the EventBus.
//
// Time is game time in seconds, not wall time: replays must produce identical
// event streams.
type Event interface {
	Type() string
	Source() string
	Time() float64
	Data() any
}

type (
	// EventHandler is invoked per delivered event. Errors are joined and returned from Publish.
	EventHandler func(event Event) error
)

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler from the bus. Multiple calls are safe.
	Cancel() error
}

// Metrics is a minimal set of counters.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}

// Wildcard subscribes to every event type.
const Wildcard = "*"
