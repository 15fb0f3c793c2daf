package repository

import (
	"context"
	"fmt"

	"songbid/database"
	"songbid/models"
	"songbid/service"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, external_ref, token_balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.ExternalRef,
		&user.TokenBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return &user, nil
}

// GetByExternalRef retrieves a user by the identity provider's reference
func (r *UserRepository) GetByExternalRef(ctx context.Context, externalRef string) (*models.User, error) {
	query := `
		SELECT id, external_ref, token_balance, created_at, updated_at
		FROM users
		WHERE external_ref = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, externalRef).Scan(
		&user.ID,
		&user.ExternalRef,
		&user.TokenBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by external ref %q: %w", externalRef, err)
	}

	return &user, nil
}

// Create creates a new user with the initial token balance
func (r *UserRepository) Create(ctx context.Context, externalRef string, initialBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (external_ref, token_balance)
		VALUES ($1, $2)
		RETURNING id, external_ref, token_balance, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, externalRef, initialBalance).Scan(
		&user.ID,
		&user.ExternalRef,
		&user.TokenBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user with external ref %q: %w", externalRef, err)
	}

	return &user, nil
}

// AddBalance adds to a user's token balance atomically and returns the
// balance after the update. The returned value comes from the UPDATE itself,
// so it stays correct even when other transactions touched the row since the
// caller last read it.
func (r *UserRepository) AddBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", service.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET token_balance = token_balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING token_balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("%w: user %d", service.ErrNotFound, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for user %d: %w", userID, err)
	}

	return newBalance, nil
}

// DeductBalance deducts from a user's token balance atomically and returns
// the balance after the update. The WHERE clause re-checks the balance under
// the row lock, so two concurrent debits for the same user cannot jointly
// overdraw it.
func (r *UserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", service.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET token_balance = token_balance - $1, updated_at = NOW()
		WHERE id = $2 AND token_balance >= $1
		RETURNING token_balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, userID).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Distinguish an unknown user from an insufficient balance
		user, err := r.GetByID(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to check user: %w", err)
		}
		if user == nil {
			return 0, fmt.Errorf("%w: user %d", service.ErrNotFound, userID)
		}
		return 0, fmt.Errorf("%w: have %d, need %d", service.ErrInsufficientFunds, user.TokenBalance, amount)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance for user %d: %w", userID, err)
	}

	return newBalance, nil
}
