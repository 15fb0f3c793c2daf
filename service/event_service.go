package service

import (
	"context"
	"fmt"
	"strings"

	"songbid/events"
	"songbid/models"

	log "github.com/sirupsen/logrus"
)

type eventService struct {
	uowFactory UnitOfWorkFactory
}

// NewEventService creates a new event directory service
func NewEventService(uowFactory UnitOfWorkFactory) EventService {
	return &eventService{
		uowFactory: uowFactory,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, name string) (*models.Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: event name must not be empty", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	event, err := uow.EventRepository().Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}

	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, state models.EventState) ([]*models.Event, error) {
	switch state {
	case models.EventStateUpcoming, models.EventStateActive, models.EventStateCompleted, models.EventStateCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown event state %q", ErrInvalidInput, state)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	list, err := uow.EventRepository().ListByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return list, nil
}

// TransitionState moves an event through its lifecycle. Cancelling an event
// refunds every unrefunded bid in the same transaction, so either the event
// is cancelled with all balances restored or nothing changed.
func (s *eventService) TransitionState(ctx context.Context, eventID int64, target models.EventState) (*models.Event, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}

	if !event.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, event.State, target)
	}

	if target == models.EventStateCancelled {
		if err := refundEventBids(ctx, uow, event); err != nil {
			return nil, err
		}
	}

	if err := uow.EventRepository().UpdateState(ctx, eventID, target); err != nil {
		return nil, fmt.Errorf("failed to update event state: %w", err)
	}

	uow.EventBus().Publish(events.EventStateChangeEvent{
		EventID:  eventID,
		OldState: event.State,
		NewState: target,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	oldState := event.State
	event.State = target

	log.WithFields(log.Fields{
		"eventID":  eventID,
		"oldState": oldState,
		"newState": target,
	}).Info("Event state changed")

	return event, nil
}

// refundEventBids credits back every unrefunded bid as a compensating
// adjustment. Bids themselves are never mutated.
func refundEventBids(ctx context.Context, uow UnitOfWork, event *models.Event) error {
	bids, err := uow.BidRepository().ListUnrefundedForEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("failed to list bids for refund: %w", err)
	}

	for _, bid := range bids {
		adjustment := &models.BidAdjustment{
			BidID:       bid.ID,
			UserID:      bid.UserID,
			TokenAmount: -bid.TokenAmount,
			Reason:      "event_cancelled",
		}
		if err := uow.BidRepository().CreateAdjustment(ctx, adjustment); err != nil {
			return fmt.Errorf("failed to record adjustment for bid %d: %w", bid.ID, err)
		}

		newBalance, err := uow.UserRepository().AddBalance(ctx, bid.UserID, bid.TokenAmount)
		if err != nil {
			return fmt.Errorf("failed to credit refund for bid %d: %w", bid.ID, err)
		}

		transaction := &models.TokenTransaction{
			UserID:          bid.UserID,
			BalanceBefore:   newBalance - bid.TokenAmount,
			BalanceAfter:    newBalance,
			ChangeAmount:    bid.TokenAmount,
			TransactionType: models.TransactionTypeBidRefund,
			Metadata: map[string]any{
				"event_id": event.ID,
				"bid_id":   bid.ID,
			},
		}
		if err := RecordTokenChange(ctx, uow, transaction); err != nil {
			return fmt.Errorf("failed to record refund for bid %d: %w", bid.ID, err)
		}
	}

	if len(bids) > 0 {
		log.WithFields(log.Fields{
			"eventID":     event.ID,
			"refundCount": len(bids),
		}).Info("Refunded bids for cancelled event")
	}

	return nil
}
