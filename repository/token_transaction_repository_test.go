package repository

import (
	"context"
	"testing"

	"songbid/models"
	"songbid/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenTransactionRepository_RecordAndGetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewTokenTransactionRepository(testDB.DB)
	ctx := context.Background()

	user, err := userRepo.Create(ctx, "audited-user", 100)
	require.NoError(t, err)

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		transaction := testutil.CreateTestTokenTransaction(user.ID, models.TransactionTypeInitial)
		err := repo.Record(ctx, transaction)
		require.NoError(t, err)
		assert.NotZero(t, transaction.ID)
		assert.False(t, transaction.CreatedAt.IsZero())
	})

	t.Run("metadata survives round trip", func(t *testing.T) {
		transaction := &models.TokenTransaction{
			UserID:          user.ID,
			BalanceBefore:   100,
			BalanceAfter:    75,
			ChangeAmount:    -25,
			TransactionType: models.TransactionTypeBidDebit,
			Metadata: map[string]any{
				"event_id":        float64(7),
				"song_request_id": float64(11),
			},
		}
		require.NoError(t, repo.Record(ctx, transaction))

		history, err := repo.GetByUser(ctx, user.ID, 10)
		require.NoError(t, err)
		require.NotEmpty(t, history)

		latest := history[0]
		assert.Equal(t, models.TransactionTypeBidDebit, latest.TransactionType)
		assert.Equal(t, float64(7), latest.Metadata["event_id"])
	})

	t.Run("newest first with limit", func(t *testing.T) {
		history, err := repo.GetByUser(ctx, user.ID, 1)
		require.NoError(t, err)
		require.Len(t, history, 1)
	})

	t.Run("no transactions for unknown user", func(t *testing.T) {
		history, err := repo.GetByUser(ctx, 999999, 10)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
