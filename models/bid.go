package models

import "time"

// Bid represents tokens committed by a user toward a song request.
// Bids are append-only: refunds are recorded as separate BidAdjustment rows,
// never as mutation of an existing bid.
type Bid struct {
	ID                 int64     `db:"id"`
	SongRequestID      int64     `db:"song_request_id"`
	UserID             int64     `db:"user_id"`
	TokenAmount        int64     `db:"token_amount"`
	TokenTransactionID *int64    `db:"token_transaction_id"`
	CreatedAt          time.Time `db:"created_at"`
}

// BidAdjustment is a compensating record against an existing bid.
// TokenAmount is negative for refunds.
type BidAdjustment struct {
	ID          int64     `db:"id"`
	BidID       int64     `db:"bid_id"`
	UserID      int64     `db:"user_id"`
	TokenAmount int64     `db:"token_amount"`
	Reason      string    `db:"reason"`
	CreatedAt   time.Time `db:"created_at"`
}

// BidResult represents the outcome of a committed bid (returned to the caller)
type BidResult struct {
	BidID      int64
	NewBalance int64
	Queue      []*QueueEntry
}
