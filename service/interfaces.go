package service

import (
	"context"

	"songbid/events"
	"songbid/models"
)

// UserRepository defines the interface for user and balance data access
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByExternalRef retrieves a user by the identity provider's reference
	GetByExternalRef(ctx context.Context, externalRef string) (*models.User, error)

	// Create creates a new user with the initial token balance
	Create(ctx context.Context, externalRef string, initialBalance int64) (*models.User, error)

	// AddBalance adds to a user's token balance atomically and returns the
	// resulting balance as written by the database
	AddBalance(ctx context.Context, userID int64, amount int64) (int64, error)

	// DeductBalance deducts from a user's token balance atomically and
	// returns the resulting balance, failing with ErrInsufficientFunds if the
	// balance cannot cover the amount
	DeductBalance(ctx context.Context, userID int64, amount int64) (int64, error)
}

// EventRepository defines the interface for event directory data access
type EventRepository interface {
	// Create creates a new event in the upcoming state
	Create(ctx context.Context, name string) (*models.Event, error)

	// GetByID retrieves an event by id
	GetByID(ctx context.Context, id int64) (*models.Event, error)

	// UpdateState updates an event's lifecycle state
	UpdateState(ctx context.Context, id int64, state models.EventState) error

	// ListByState returns all events in the given state
	ListByState(ctx context.Context, state models.EventState) ([]*models.Event, error)
}

// SongRequestRepository defines the interface for song request data access
type SongRequestRepository interface {
	// GetOrCreate returns the existing request matching (eventID, title,
	// artist) case-insensitively, or creates one. The second return value
	// reports whether a new request was created.
	GetOrCreate(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, bool, error)

	// GetByID retrieves a song request by id
	GetByID(ctx context.Context, id int64) (*models.SongRequest, error)

	// ListForEvent returns all requests for an event, unordered
	ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error)
}

// BidRepository defines the interface for bid data access.
// Bids are append-only; there is no update or delete. Refunds are modeled as
// compensating adjustment records.
type BidRepository interface {
	// Create appends an immutable bid record
	Create(ctx context.Context, bid *models.Bid) error

	// GetByID retrieves a bid by id
	GetByID(ctx context.Context, id int64) (*models.Bid, error)

	// TotalsBySongRequest returns songRequestID -> net token total (bids plus
	// adjustments) for all requests in the event
	TotalsBySongRequest(ctx context.Context, eventID int64) (map[int64]int64, error)

	// ListUnrefundedForEvent returns bids in the event without any adjustment
	ListUnrefundedForEvent(ctx context.Context, eventID int64) ([]*models.Bid, error)

	// CreateAdjustment appends a compensating adjustment against a bid
	CreateAdjustment(ctx context.Context, adjustment *models.BidAdjustment) error
}

// TokenTransactionRepository defines the interface for the balance audit trail
type TokenTransactionRepository interface {
	// Record creates a new token transaction entry
	Record(ctx context.Context, transaction *models.TokenTransaction) error

	// GetByUser returns transactions for a specific user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error)
}

// UserService defines the interface for user provisioning
type UserService interface {
	// GetOrCreateUser retrieves an existing user or provisions a new one with
	// the configured starting token grant
	GetOrCreateUser(ctx context.Context, externalRef string) (*models.User, error)
}

// LedgerService defines the interface for token balance operations
type LedgerService interface {
	// Credit increases a user's balance; amount must be positive
	Credit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error)

	// Debit atomically decreases a user's balance and returns the new
	// balance, failing with ErrInsufficientFunds when it would overdraw
	Debit(ctx context.Context, userID int64, amount int64, transactionType models.TransactionType, metadata map[string]any) (int64, error)

	// GetBalance returns the user's current token balance
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// GetHistory returns the user's balance audit trail, newest first
	GetHistory(ctx context.Context, userID int64, limit int) ([]*models.TokenTransaction, error)
}

// CatalogService defines the interface for the song request catalog
type CatalogService interface {
	// GetOrCreateRequest resolves a request within an active event
	GetOrCreateRequest(ctx context.Context, eventID int64, title, artist string) (*models.SongRequest, error)

	// ListForEvent returns all requests for an event, unordered
	ListForEvent(ctx context.Context, eventID int64) ([]*models.SongRequest, error)
}

// BiddingService defines the interface for bid submission
type BiddingService interface {
	// PlaceBid validates and commits one bid, returning the fresh queue
	// snapshot on success. Failures leave ledger, catalog and registry
	// unchanged.
	PlaceBid(ctx context.Context, eventID, userID int64, songTitle, artist string, tokenAmount int64) (*models.BidResult, error)
}

// QueueService defines the interface for queue reads
type QueueService interface {
	// GetQueue derives the ranked playback queue from current bid data
	GetQueue(ctx context.Context, eventID int64) ([]*models.QueueEntry, error)
}

// EventService defines the interface for event directory operations
type EventService interface {
	// CreateEvent creates a new event in the upcoming state
	CreateEvent(ctx context.Context, name string) (*models.Event, error)

	// GetEvent retrieves an event by id
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)

	// ListEvents returns all events in the given lifecycle state
	ListEvents(ctx context.Context, state models.EventState) ([]*models.Event, error)

	// TransitionState moves an event through its lifecycle. Transitioning to
	// cancelled refunds all unrefunded bids via compensating adjustments.
	TransitionState(ctx context.Context, eventID int64, target models.EventState) (*models.Event, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	EventRepository() EventRepository
	SongRequestRepository() SongRequestRepository
	BidRepository() BidRepository
	TokenTransactionRepository() TokenTransactionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
