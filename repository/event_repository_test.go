package repository

import (
	"context"
	"testing"

	"songbid/models"
	"songbid/repository/testutil"
	"songbid/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Lifecycle(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEventRepository(testDB.DB)
	ctx := context.Background()

	t.Run("create starts upcoming", func(t *testing.T) {
		event, err := repo.Create(ctx, "Friday Night")
		require.NoError(t, err)
		assert.NotZero(t, event.ID)
		assert.Equal(t, models.EventStateUpcoming, event.State)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("update state", func(t *testing.T) {
		event, err := repo.Create(ctx, "Saturday Night")
		require.NoError(t, err)

		err = repo.UpdateState(ctx, event.ID, models.EventStateActive)
		require.NoError(t, err)

		updated, err := repo.GetByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, models.EventStateActive, updated.State)
	})

	t.Run("list by state", func(t *testing.T) {
		event, err := repo.Create(ctx, "Sunday Night")
		require.NoError(t, err)
		err = repo.UpdateState(ctx, event.ID, models.EventStateCancelled)
		require.NoError(t, err)

		cancelled, err := repo.ListByState(ctx, models.EventStateCancelled)
		require.NoError(t, err)
		require.Len(t, cancelled, 1)
		assert.Equal(t, event.ID, cancelled[0].ID)
	})

	t.Run("unknown event", func(t *testing.T) {
		event, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, event)

		err = repo.UpdateState(ctx, 999999, models.EventStateActive)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
