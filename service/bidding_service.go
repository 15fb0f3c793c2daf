package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"songbid/events"
	"songbid/models"
)

type biddingService struct {
	uowFactory UnitOfWorkFactory
}

// NewBiddingService creates a new bidding service
func NewBiddingService(uowFactory UnitOfWorkFactory) BiddingService {
	return &biddingService{
		uowFactory: uowFactory,
	}
}

// PlaceBid runs one bid submission through validation and commit. The debit,
// the audit entry and the bid record commit in a single transaction, so a
// reader can never observe one without the others. Any failure rolls the
// whole submission back.
func (s *biddingService) PlaceBid(ctx context.Context, eventID, userID int64, songTitle, artist string, tokenAmount int64) (*models.BidResult, error) {
	// Shape validation before touching storage
	if tokenAmount <= 0 {
		return nil, fmt.Errorf("%w: token amount must be a positive integer", ErrInvalidInput)
	}
	if strings.TrimSpace(songTitle) == "" || strings.TrimSpace(artist) == "" {
		return nil, fmt.Errorf("%w: song title and artist must not be empty", ErrInvalidInput)
	}
	if eventID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: event and user ids must be positive", ErrInvalidInput)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Event must be active; resolves or creates the song request
	request, err := resolveRequest(ctx, uow, eventID, songTitle, artist)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if user.TokenBalance < tokenAmount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, user.TokenBalance, tokenAmount)
	}

	// The conditional update re-checks the balance under the row lock.
	// Failing here after the check above means a concurrent debit for the
	// same user committed first. The audit row derives from the balance the
	// UPDATE wrote, which a concurrent commit may have moved past the read
	// above.
	newBalance, err := uow.UserRepository().DeductBalance(ctx, userID, tokenAmount)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFundsRace, user.TokenBalance, tokenAmount)
		}
		return nil, fmt.Errorf("failed to deduct balance: %w", err)
	}

	transaction := &models.TokenTransaction{
		UserID:          userID,
		BalanceBefore:   newBalance + tokenAmount,
		BalanceAfter:    newBalance,
		ChangeAmount:    -tokenAmount,
		TransactionType: models.TransactionTypeBidDebit,
		Metadata: map[string]any{
			"event_id":        eventID,
			"song_request_id": request.ID,
			"bid_amount":      tokenAmount,
		},
	}
	if err := RecordTokenChange(ctx, uow, transaction); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	bid := &models.Bid{
		SongRequestID:      request.ID,
		UserID:             userID,
		TokenAmount:        tokenAmount,
		TokenTransactionID: &transaction.ID,
	}
	if err := uow.BidRepository().Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("failed to create bid record: %w", err)
	}

	uow.EventBus().Publish(events.BidPlacedEvent{
		BidID:         bid.ID,
		SongRequestID: request.ID,
		EventID:       eventID,
		UserID:        userID,
		TokenAmount:   tokenAmount,
	})

	// Queue snapshot from inside the transaction so it includes this bid
	queue, err := computeQueue(ctx, uow, eventID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BidResult{
		BidID:      bid.ID,
		NewBalance: newBalance,
		Queue:      queue,
	}, nil
}

// computeQueue derives the ranked queue within the caller's unit of work
func computeQueue(ctx context.Context, uow UnitOfWork, eventID int64) ([]*models.QueueEntry, error) {
	requests, err := uow.SongRequestRepository().ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list song requests: %w", err)
	}

	totals, err := uow.BidRepository().TotalsBySongRequest(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to total bids: %w", err)
	}

	return RankQueue(requests, totals), nil
}
