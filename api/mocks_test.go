package api

import (
	"context"

	"songbid/models"

	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetOrCreateUser(ctx context.Context, externalRef string) (*models.User, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Credit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, userID, amount, transactionType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) Debit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, userID, amount, transactionType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) GetHistory(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TokenTransaction), args.Error(1)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) GetOrCreateRequest(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, error) {
	args := m.Called(ctx, eventID, title, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SongRequest), args.Error(1)
}

func (m *mockCatalogService) ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SongRequest), args.Error(1)
}

type mockBiddingService struct {
	mock.Mock
}

func (m *mockBiddingService) PlaceBid(ctx context.Context, eventID, userID int64, songTitle, artist string, tokenAmount int64) (*models.BidResult, error) {
	args := m.Called(ctx, eventID, userID, songTitle, artist, tokenAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BidResult), args.Error(1)
}

type mockQueueService struct {
	mock.Mock
}

func (m *mockQueueService) GetQueue(ctx context.Context, eventID int64) ([]*models.QueueEntry, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QueueEntry), args.Error(1)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) CreateEvent(ctx context.Context, name string) (*models.Event, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventService) ListEvents(ctx context.Context, state models.EventState) ([]*models.Event, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *mockEventService) TransitionState(ctx context.Context, eventID int64, target models.EventState) (*models.Event, error) {
	args := m.Called(ctx, eventID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
