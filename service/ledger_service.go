package service

import (
	"context"
	"errors"
	"fmt"

	"songbid/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new token ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

func (s *ledgerService) Credit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	// The audit row derives from the balance the UPDATE wrote, not from the
	// read above, which another transaction may already have outdated.
	newBalance, err := uow.UserRepository().AddBalance(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to add balance: %w", err)
	}

	transaction := &models.TokenTransaction{
		UserID:          userID,
		BalanceBefore:   newBalance - amount,
		BalanceAfter:    newBalance,
		ChangeAmount:    amount,
		TransactionType: transactionType,
		Metadata:        metadata,
	}
	if err := RecordTokenChange(ctx, uow, transaction); err != nil {
		return 0, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *ledgerService) Debit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if user.TokenBalance < amount {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, user.TokenBalance, amount)
	}

	// The conditional update re-checks the balance under the row lock; a
	// failure here means a concurrent debit for the same user won the race.
	// The returned balance is what the UPDATE wrote and feeds the audit row.
	newBalance, err := uow.UserRepository().DeductBalance(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFundsRace, user.TokenBalance, amount)
		}
		return 0, fmt.Errorf("failed to deduct balance: %w", err)
	}

	transaction := &models.TokenTransaction{
		UserID:          userID,
		BalanceBefore:   newBalance + amount,
		BalanceAfter:    newBalance,
		ChangeAmount:    -amount,
		TransactionType: transactionType,
		Metadata:        metadata,
	}
	if err := RecordTokenChange(ctx, uow, transaction); err != nil {
		return 0, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	return user.TokenBalance, nil
}

func (s *ledgerService) GetHistory(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transactions, err := uow.TokenTransactionRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get token transactions: %w", err)
	}

	return transactions, nil
}
