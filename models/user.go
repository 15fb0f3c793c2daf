package models

import (
	"time"
)

// User represents a platform user with a token balance
type User struct {
	ID           int64     `db:"id"`
	ExternalRef  string    `db:"external_ref"` // identity provider's subject, opaque to us
	TokenBalance int64     `db:"token_balance"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
