package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"songbid/database"
	"songbid/models"
)

// TokenTransactionRepository implements the service.TokenTransactionRepository interface
type TokenTransactionRepository struct {
	q queryable
}

// NewTokenTransactionRepository creates a new token transaction repository
func NewTokenTransactionRepository(db *database.DB) *TokenTransactionRepository {
	return &TokenTransactionRepository{q: db.Pool}
}

// newTokenTransactionRepositoryWithTx creates a new token transaction repository with a transaction
func newTokenTransactionRepositoryWithTx(tx queryable) *TokenTransactionRepository {
	return &TokenTransactionRepository{q: tx}
}

// Record creates a new token transaction entry
func (r *TokenTransactionRepository) Record(ctx context.Context, transaction *models.TokenTransaction) error {
	metadataJSON, err := json.Marshal(transaction.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO token_transactions
		(user_id, balance_before, balance_after, change_amount, transaction_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		transaction.UserID,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.ChangeAmount,
		transaction.TransactionType,
		metadataJSON,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record token transaction for user %d: %w", transaction.UserID, err)
	}

	return nil
}

// GetByUser returns transactions for a specific user, newest first
func (r *TokenTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error) {
	query := `
		SELECT id, user_id, balance_before, balance_after, change_amount,
		       transaction_type, metadata, created_at
		FROM token_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get token transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*models.TokenTransaction
	for rows.Next() {
		var transaction models.TokenTransaction
		var metadataJSON []byte

		err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.BalanceBefore,
			&transaction.BalanceAfter,
			&transaction.ChangeAmount,
			&transaction.TransactionType,
			&metadataJSON,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token transaction: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &transaction.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate token transactions: %w", err)
	}

	return transactions, nil
}
