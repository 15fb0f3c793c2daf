package models

import (
	"time"
)

// TransactionType represents the type of token balance change
type TransactionType string

const (
	TransactionTypeInitial   TransactionType = "initial"
	TransactionTypePurchase  TransactionType = "purchase"
	TransactionTypeBidDebit  TransactionType = "bid_debit"
	TransactionTypeBidRefund TransactionType = "bid_refund"
)

// TokenTransaction represents a historical token balance change
type TokenTransaction struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	BalanceBefore   int64           `db:"balance_before"`
	BalanceAfter    int64           `db:"balance_after"`
	ChangeAmount    int64           `db:"change_amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Metadata        map[string]any  `db:"metadata"`
	CreatedAt       time.Time       `db:"created_at"`
}
