package service

import (
	"context"

	"songbid/events"
	"songbid/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalRef(ctx context.Context, externalRef string) (*models.User, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, externalRef string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, externalRef, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, name string) (*models.Event, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateState(ctx context.Context, id int64, state models.EventState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockEventRepository) ListByState(ctx context.Context, state models.EventState) ([]*models.Event, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

// MockSongRequestRepository is a mock implementation of SongRequestRepository
type MockSongRequestRepository struct {
	mock.Mock
}

func (m *MockSongRequestRepository) GetOrCreate(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, bool, error) {
	args := m.Called(ctx, eventID, title, artist)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.SongRequest), args.Bool(1), args.Error(2)
}

func (m *MockSongRequestRepository) GetByID(ctx context.Context, id int64) (*models.SongRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SongRequest), args.Error(1)
}

func (m *MockSongRequestRepository) ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SongRequest), args.Error(1)
}

// MockBidRepository is a mock implementation of BidRepository
type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) Create(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockBidRepository) GetByID(ctx context.Context, id int64) (*models.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *MockBidRepository) TotalsBySongRequest(ctx context.Context, eventID int64) (map[int64]int64, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockBidRepository) ListUnrefundedForEvent(ctx context.Context, eventID int64) ([]*models.Bid, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bid), args.Error(1)
}

func (m *MockBidRepository) CreateAdjustment(ctx context.Context, adjustment *models.BidAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

// MockTokenTransactionRepository is a mock implementation of TokenTransactionRepository
type MockTokenTransactionRepository struct {
	mock.Mock
}

func (m *MockTokenTransactionRepository) Record(ctx context.Context, transaction *models.TokenTransaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTokenTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TokenTransaction), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// noopPublisher drops events. Used when a test does not assert on them.
type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories rather than mocked per getter.
type MockUnitOfWork struct {
	mock.Mock
	userRepo        UserRepository
	eventRepo       EventRepository
	songRequestRepo SongRequestRepository
	bidRepo         BidRepository
	transactionRepo TokenTransactionRepository
	publisher       EventPublisher
}

// SetRepositories wires mock repositories into the unit of work. Pass nil for
// repositories the test does not touch.
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	eventRepo EventRepository,
	songRequestRepo SongRequestRepository,
	bidRepo BidRepository,
	transactionRepo TokenTransactionRepository,
) {
	m.userRepo = userRepo
	m.eventRepo = eventRepo
	m.songRequestRepo = songRequestRepo
	m.bidRepo = bidRepo
	m.transactionRepo = transactionRepo
}

// SetEventPublisher wires a publisher for tests that assert on emitted events
func (m *MockUnitOfWork) SetEventPublisher(publisher EventPublisher) {
	m.publisher = publisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) EventRepository() EventRepository {
	return m.eventRepo
}

func (m *MockUnitOfWork) SongRequestRepository() SongRequestRepository {
	return m.songRequestRepo
}

func (m *MockUnitOfWork) BidRepository() BidRepository {
	return m.bidRepo
}

func (m *MockUnitOfWork) TokenTransactionRepository() TokenTransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		return noopPublisher{}
	}
	return m.publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
