package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// RegisterAuditLogging subscribes handlers that write a structured log line
// for each domain event operators watch in production. Handlers run off the
// request path, after the emitting transaction has committed.
func RegisterAuditLogging(bus *Bus) {
	bus.Subscribe(EventTypeBidPlaced, func(ctx context.Context, event Event) {
		e, ok := event.(BidPlacedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"bidID":         e.BidID,
			"songRequestID": e.SongRequestID,
			"eventID":       e.EventID,
			"userID":        e.UserID,
			"tokenAmount":   e.TokenAmount,
		}).Info("Bid placed")
	})

	bus.Subscribe(EventTypeTokenBalanceChange, func(ctx context.Context, event Event) {
		e, ok := event.(TokenBalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"userID":          e.UserID,
			"oldBalance":      e.OldBalance,
			"newBalance":      e.NewBalance,
			"changeAmount":    e.ChangeAmount,
			"transactionType": e.TransactionType,
		}).Info("Token balance changed")
	})

	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		e, ok := event.(UserCreatedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"userID":         e.UserID,
			"externalRef":    e.ExternalRef,
			"initialBalance": e.InitialBalance,
		}).Info("User provisioned")
	})

	bus.Subscribe(EventTypeEventStateChange, func(ctx context.Context, event Event) {
		e, ok := event.(EventStateChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"eventID":  e.EventID,
			"oldState": e.OldState,
			"newState": e.NewState,
		}).Info("Event state changed")
	})
}
