package service

import (
	"context"
	"fmt"
	"strings"

	"songbid/models"
)

type userService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, startingBalance int64) UserService {
	return &userService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// GetOrCreateUser retrieves an existing user or provisions a new one with the
// starting token grant
func (s *userService) GetOrCreateUser(ctx context.Context, externalRef string) (*models.User, error) {
	if strings.TrimSpace(externalRef) == "" {
		return nil, fmt.Errorf("%w: external reference must not be empty", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByExternalRef(ctx, externalRef)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user == nil {
		// Database unique constraint on external_ref prevents duplicates
		user, err = uow.UserRepository().Create(ctx, externalRef, s.startingBalance)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		transaction := &models.TokenTransaction{
			UserID:          user.ID,
			BalanceBefore:   0,
			BalanceAfter:    s.startingBalance,
			ChangeAmount:    s.startingBalance,
			TransactionType: models.TransactionTypeInitial,
			Metadata: map[string]any{
				"external_ref": externalRef,
			},
		}
		if err := RecordTokenChange(ctx, uow, transaction); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}
