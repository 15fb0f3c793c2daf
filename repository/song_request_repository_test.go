package repository

import (
	"context"
	"testing"

	"songbid/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongRequestRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	eventRepo := NewEventRepository(testDB.DB)
	repo := NewSongRequestRepository(testDB.DB)
	ctx := context.Background()

	event, err := eventRepo.Create(ctx, "Friday Night")
	require.NoError(t, err)

	t.Run("creates when absent", func(t *testing.T) {
		request, created, err := repo.GetOrCreate(ctx, event.ID, "Mr. Brightside", "The Killers")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, request.ID)
		assert.Equal(t, "Mr. Brightside", request.Title)
		assert.Equal(t, "The Killers", request.Artist)
	})

	t.Run("case-insensitive match returns existing", func(t *testing.T) {
		original, created, err := repo.GetOrCreate(ctx, event.ID, "Dancing Queen", "ABBA")
		require.NoError(t, err)
		require.True(t, created)

		request, created, err := repo.GetOrCreate(ctx, event.ID, "DANCING QUEEN", "abba")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, original.ID, request.ID)
		// Stored casing is the first writer's
		assert.Equal(t, "Dancing Queen", request.Title)
		assert.Equal(t, "ABBA", request.Artist)
	})

	t.Run("same song in another event is distinct", func(t *testing.T) {
		otherEvent, err := eventRepo.Create(ctx, "Saturday Night")
		require.NoError(t, err)

		first, created, err := repo.GetOrCreate(ctx, event.ID, "Shared Song", "Shared Artist")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := repo.GetOrCreate(ctx, otherEvent.ID, "Shared Song", "Shared Artist")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("same title different artist is distinct", func(t *testing.T) {
		first, created, err := repo.GetOrCreate(ctx, event.ID, "Hurt", "Nine Inch Nails")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := repo.GetOrCreate(ctx, event.ID, "Hurt", "Johnny Cash")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestSongRequestRepository_ListForEvent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	eventRepo := NewEventRepository(testDB.DB)
	repo := NewSongRequestRepository(testDB.DB)
	ctx := context.Background()

	event, err := eventRepo.Create(ctx, "Friday Night")
	require.NoError(t, err)

	t.Run("empty event", func(t *testing.T) {
		requests, err := repo.ListForEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, requests)
	})

	t.Run("lists all requests", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, event.ID, "Song A", "Artist A")
		require.NoError(t, err)
		_, _, err = repo.GetOrCreate(ctx, event.ID, "Song B", "Artist B")
		require.NoError(t, err)

		requests, err := repo.ListForEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, requests, 2)
	})
}

func TestSongRequestRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	eventRepo := NewEventRepository(testDB.DB)
	repo := NewSongRequestRepository(testDB.DB)
	ctx := context.Background()

	event, err := eventRepo.Create(ctx, "Friday Night")
	require.NoError(t, err)

	created, _, err := repo.GetOrCreate(ctx, event.ID, "Song", "Artist")
	require.NoError(t, err)

	request, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, request)
	assert.Equal(t, created.ID, request.ID)

	missing, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
