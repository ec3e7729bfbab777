package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Type labels a domain event.
type Type string

const (
	TypePickTransferred      Type = "PickTransferred"
	TypeTradeExecuted        Type = "TradeExecuted"
	TypeTradeVetoed          Type = "TradeVetoed"
	TypeOfferCreated         Type = "OfferCreated"
	TypeOfferExpired         Type = "OfferExpired"
	TypeNegotiationStarted   Type = "NegotiationStarted"
	TypeNegotiationUpdated   Type = "NegotiationUpdated"
	TypeNegotiationCompleted Type = "NegotiationCompleted"
	TypeCounterReceived      Type = "CounterReceived"
	TypeTradeLeaked          Type = "TradeLeaked"
)

// Event is one domain notification. Payload is the typed payload
// struct for the event's Type.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       Type        `json:"type"`
	TeamIDs    []uuid.UUID `json:"team_ids"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Handler receives a published event.
type Handler func(Event)

// Publisher is what the core components need for emitting events.
type Publisher interface {
	Publish(event Event)
}

// Bus fans events out to subscribers. Delivery is synchronous and at
// most once per registration per published event.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	all      []Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish delivers the event to all matching subscribers.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	typed := make([]Handler, len(b.handlers[event.Type]))
	copy(typed, b.handlers[event.Type])
	all := make([]Handler, len(b.all))
	copy(all, b.all)
	b.mu.RUnlock()

	for _, h := range typed {
		h(event)
	}
	for _, h := range all {
		h(event)
	}

	log.Debug().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.Type)).
		Int("subscribers", len(typed)+len(all)).
		Msg("event published")
}
