package service

import (
	"context"
	"fmt"

	"songbid/events"
	"songbid/models"
)

// RecordTokenChange records a token transaction entry and emits the matching
// events. This is the single entry point for all balance changes in the
// system.
func RecordTokenChange(ctx context.Context, uow UnitOfWork, transaction *models.TokenTransaction) error {
	if err := uow.TokenTransactionRepository().Record(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record token transaction: %w", err)
	}

	// Emitted only after the surrounding transaction commits
	uow.EventBus().Publish(events.TokenBalanceChangeEvent{
		UserID:          transaction.UserID,
		OldBalance:      transaction.BalanceBefore,
		NewBalance:      transaction.BalanceAfter,
		TransactionType: transaction.TransactionType,
		ChangeAmount:    transaction.ChangeAmount,
	})

	if transaction.TransactionType == models.TransactionTypeInitial {
		if externalRef, ok := transaction.Metadata["external_ref"].(string); ok {
			uow.EventBus().Publish(events.UserCreatedEvent{
				UserID:         transaction.UserID,
				ExternalRef:    externalRef,
				InitialBalance: transaction.BalanceAfter,
			})
		}
	}

	return nil
}
