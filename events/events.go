package events

import (
	"context"
	"sync"

	"songbid/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTokenBalanceChange EventType = "token_balance_change"
	EventTypeUserCreated        EventType = "user_created"
	EventTypeBidPlaced          EventType = "bid_placed"
	EventTypeSongRequestCreated EventType = "song_request_created"
	EventTypeEventStateChange   EventType = "event_state_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TokenBalanceChangeEvent represents a token balance change that occurred
type TokenBalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e TokenBalanceChangeEvent) Type() EventType {
	return EventTypeTokenBalanceChange
}

// UserCreatedEvent represents a new user provisioning
type UserCreatedEvent struct {
	UserID         int64
	ExternalRef    string
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// BidPlacedEvent represents a bid that was committed
type BidPlacedEvent struct {
	BidID         int64
	SongRequestID int64
	EventID       int64
	UserID        int64
	TokenAmount   int64
}

func (e BidPlacedEvent) Type() EventType {
	return EventTypeBidPlaced
}

// SongRequestCreatedEvent represents a song request created by a first bid
type SongRequestCreatedEvent struct {
	SongRequestID int64
	EventID       int64
	Title         string
	Artist        string
}

func (e SongRequestCreatedEvent) Type() EventType {
	return EventTypeSongRequestCreated
}

// EventStateChangeEvent represents an event lifecycle transition
type EventStateChangeEvent struct {
	EventID  int64
	OldState models.EventState
	NewState models.EventState
}

func (e EventStateChangeEvent) Type() EventType {
	return EventTypeEventStateChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the DB commit succeeds.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Events outlive the transaction context, so emit on a background context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after a DB rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
