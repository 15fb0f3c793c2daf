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

type bidTestFixture struct {
	userRepo    *UserRepository
	eventRepo   *EventRepository
	requestRepo *SongRequestRepository
	bidRepo     *BidRepository
	user        *models.User
	event       *models.Event
	request     *models.SongRequest
}

func setupBidFixture(t *testing.T, testDB *testutil.TestDatabase) *bidTestFixture {
	ctx := context.Background()

	f := &bidTestFixture{
		userRepo:    NewUserRepository(testDB.DB),
		eventRepo:   NewEventRepository(testDB.DB),
		requestRepo: NewSongRequestRepository(testDB.DB),
		bidRepo:     NewBidRepository(testDB.DB),
	}

	var err error
	f.user, err = f.userRepo.Create(ctx, "bidder-1", 1000)
	require.NoError(t, err)

	f.event, err = f.eventRepo.Create(ctx, "Friday Night")
	require.NoError(t, err)

	f.request, _, err = f.requestRepo.GetOrCreate(ctx, f.event.ID, "Mr. Brightside", "The Killers")
	require.NoError(t, err)

	return f
}

func TestBidRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	f := setupBidFixture(t, testDB)
	ctx := context.Background()

	t.Run("append bid", func(t *testing.T) {
		bid := testutil.CreateTestBid(f.request.ID, f.user.ID, 25)
		err := f.bidRepo.Create(ctx, bid)
		require.NoError(t, err)
		assert.NotZero(t, bid.ID)
		assert.False(t, bid.CreatedAt.IsZero())

		stored, err := f.bidRepo.GetByID(ctx, bid.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, f.request.ID, stored.SongRequestID)
		assert.Equal(t, f.user.ID, stored.UserID)
		assert.Equal(t, int64(25), stored.TokenAmount)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		bid := testutil.CreateTestBid(f.request.ID, f.user.ID, 0)
		err := f.bidRepo.Create(ctx, bid)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown bid returns nil", func(t *testing.T) {
		bid, err := f.bidRepo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, bid)
	})
}

func TestBidRepository_TotalsBySongRequest(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	f := setupBidFixture(t, testDB)
	ctx := context.Background()

	secondRequest, _, err := f.requestRepo.GetOrCreate(ctx, f.event.ID, "Dancing Queen", "ABBA")
	require.NoError(t, err)

	// Three bids across two requests
	for _, bid := range []*models.Bid{
		testutil.CreateTestBid(f.request.ID, f.user.ID, 25),
		testutil.CreateTestBid(f.request.ID, f.user.ID, 15),
		testutil.CreateTestBid(secondRequest.ID, f.user.ID, 50),
	} {
		require.NoError(t, f.bidRepo.Create(ctx, bid))
	}

	t.Run("sums per request", func(t *testing.T) {
		totals, err := f.bidRepo.TotalsBySongRequest(ctx, f.event.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(40), totals[f.request.ID])
		assert.Equal(t, int64(50), totals[secondRequest.ID])
	})

	t.Run("adjustments reduce totals", func(t *testing.T) {
		bids, err := f.bidRepo.ListUnrefundedForEvent(ctx, f.event.ID)
		require.NoError(t, err)
		require.NotEmpty(t, bids)

		refunded := bids[0]
		err = f.bidRepo.CreateAdjustment(ctx, &models.BidAdjustment{
			BidID:       refunded.ID,
			UserID:      refunded.UserID,
			TokenAmount: -refunded.TokenAmount,
			Reason:      "event_cancelled",
		})
		require.NoError(t, err)

		totals, err := f.bidRepo.TotalsBySongRequest(ctx, f.event.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(40)-refunded.TokenAmount, totals[f.request.ID])
	})

	t.Run("other events not included", func(t *testing.T) {
		totals, err := f.bidRepo.TotalsBySongRequest(ctx, 999999)
		require.NoError(t, err)
		assert.Empty(t, totals)
	})
}

func TestBidRepository_ListUnrefundedForEvent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	f := setupBidFixture(t, testDB)
	ctx := context.Background()

	first := testutil.CreateTestBid(f.request.ID, f.user.ID, 25)
	second := testutil.CreateTestBid(f.request.ID, f.user.ID, 10)
	require.NoError(t, f.bidRepo.Create(ctx, first))
	require.NoError(t, f.bidRepo.Create(ctx, second))

	// Refund the first bid
	require.NoError(t, f.bidRepo.CreateAdjustment(ctx, &models.BidAdjustment{
		BidID:       first.ID,
		UserID:      f.user.ID,
		TokenAmount: -25,
		Reason:      "event_cancelled",
	}))

	bids, err := f.bidRepo.ListUnrefundedForEvent(ctx, f.event.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, second.ID, bids[0].ID)
}

func TestBidRepository_CreateAdjustment_Validation(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	f := setupBidFixture(t, testDB)
	ctx := context.Background()

	bid := testutil.CreateTestBid(f.request.ID, f.user.ID, 25)
	require.NoError(t, f.bidRepo.Create(ctx, bid))

	// Adjustments are compensating entries and must be negative
	err := f.bidRepo.CreateAdjustment(ctx, &models.BidAdjustment{
		BidID:       bid.ID,
		UserID:      f.user.ID,
		TokenAmount: 25,
		Reason:      "event_cancelled",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
