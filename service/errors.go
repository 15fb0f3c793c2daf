package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy surfaced to callers. All call sites wrap these with
// fmt.Errorf("...: %w", ...) so errors.Is keeps working through the layers.
var (
	// ErrInvalidInput indicates a malformed request; the caller must correct
	// and resubmit.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a referenced user, event or song request does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrEventNotActive indicates bidding was attempted outside the event's
	// active window.
	ErrEventNotActive = errors.New("event is not active")

	// ErrInsufficientFunds indicates the user's balance cannot cover the
	// requested amount.
	ErrInsufficientFunds = errors.New("insufficient token balance")

	// ErrInsufficientFundsRace indicates the balance sufficed when validated
	// but a concurrent debit for the same user committed first. It matches
	// ErrInsufficientFunds under errors.Is.
	ErrInsufficientFundsRace = fmt.Errorf("%w: lost to concurrent debit", ErrInsufficientFunds)

	// ErrInvalidStateTransition indicates an illegal event lifecycle move.
	ErrInvalidStateTransition = errors.New("invalid event state transition")
)
