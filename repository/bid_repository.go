package repository

import (
	"context"
	"fmt"

	"songbid/database"
	"songbid/models"
	"songbid/service"

	"github.com/jackc/pgx/v5"
)

// BidRepository implements the service.BidRepository interface.
// Bids and adjustments are append-only; no update or delete exists.
type BidRepository struct {
	q queryable
}

// NewBidRepository creates a new bid repository
func NewBidRepository(db *database.DB) *BidRepository {
	return &BidRepository{q: db.Pool}
}

// newBidRepositoryWithTx creates a new bid repository with a transaction
func newBidRepositoryWithTx(tx queryable) *BidRepository {
	return &BidRepository{q: tx}
}

// Create appends an immutable bid record
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	if bid.TokenAmount <= 0 {
		return fmt.Errorf("%w: token amount must be positive", service.ErrInvalidInput)
	}

	query := `
		INSERT INTO bids (song_request_id, user_id, token_amount, token_transaction_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bid.SongRequestID,
		bid.UserID,
		bid.TokenAmount,
		bid.TokenTransactionID,
	).Scan(&bid.ID, &bid.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bid for request %d: %w", bid.SongRequestID, err)
	}

	return nil
}

// GetByID retrieves a bid by id
func (r *BidRepository) GetByID(ctx context.Context, id int64) (*models.Bid, error) {
	query := `
		SELECT id, song_request_id, user_id, token_amount, token_transaction_id, created_at
		FROM bids
		WHERE id = $1
	`

	var bid models.Bid
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bid.ID,
		&bid.SongRequestID,
		&bid.UserID,
		&bid.TokenAmount,
		&bid.TokenTransactionID,
		&bid.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bid %d: %w", id, err)
	}

	return &bid, nil
}

// TotalsBySongRequest returns songRequestID -> net token total for all
// requests in the event. Adjustments carry negative amounts, so refunded
// tokens drop out of the totals.
func (r *BidRepository) TotalsBySongRequest(ctx context.Context, eventID int64) (map[int64]int64, error) {
	query := `
		SELECT b.song_request_id,
		       SUM(b.token_amount) + COALESCE(
		           (SELECT SUM(a.token_amount)
		            FROM bid_adjustments a
		            JOIN bids ab ON ab.id = a.bid_id
		            WHERE ab.song_request_id = b.song_request_id),
		           0
		       ) AS total_tokens
		FROM bids b
		JOIN song_requests sr ON sr.id = b.song_request_id
		WHERE sr.event_id = $1
		GROUP BY b.song_request_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to total bids for event %d: %w", eventID, err)
	}
	defer rows.Close()

	totals := make(map[int64]int64)
	for rows.Next() {
		var songRequestID, total int64
		if err := rows.Scan(&songRequestID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan bid total: %w", err)
		}
		totals[songRequestID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bid totals: %w", err)
	}

	return totals, nil
}

// ListUnrefundedForEvent returns bids in the event without any adjustment
func (r *BidRepository) ListUnrefundedForEvent(ctx context.Context, eventID int64) ([]*models.Bid, error) {
	query := `
		SELECT b.id, b.song_request_id, b.user_id, b.token_amount, b.token_transaction_id, b.created_at
		FROM bids b
		JOIN song_requests sr ON sr.id = b.song_request_id
		WHERE sr.event_id = $1
		  AND NOT EXISTS (SELECT 1 FROM bid_adjustments a WHERE a.bid_id = b.id)
		ORDER BY b.id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unrefunded bids for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var bids []*models.Bid
	for rows.Next() {
		var bid models.Bid
		err := rows.Scan(
			&bid.ID,
			&bid.SongRequestID,
			&bid.UserID,
			&bid.TokenAmount,
			&bid.TokenTransactionID,
			&bid.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, &bid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bids: %w", err)
	}

	return bids, nil
}

// CreateAdjustment appends a compensating adjustment against a bid
func (r *BidRepository) CreateAdjustment(ctx context.Context, adjustment *models.BidAdjustment) error {
	if adjustment.TokenAmount >= 0 {
		return fmt.Errorf("%w: adjustment amount must be negative", service.ErrInvalidInput)
	}

	query := `
		INSERT INTO bid_adjustments (bid_id, user_id, token_amount, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		adjustment.BidID,
		adjustment.UserID,
		adjustment.TokenAmount,
		adjustment.Reason,
	).Scan(&adjustment.ID, &adjustment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create adjustment for bid %d: %w", adjustment.BidID, err)
	}

	return nil
}
