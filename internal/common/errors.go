// Package common — errors.go defines the domain errors shared across
// features. Handlers branch on these sentinels to pick status codes and
// user-facing messages.
package common

import "errors"

// Store / progression errors.
var (
	// ErrInsufficientXP — purchase price exceeds the spendable XP balance.
	ErrInsufficientXP = errors.New("not enough XP for this purchase")
	// ErrItemAlreadyOwned — the item is already in the user's inventory.
	ErrItemAlreadyOwned = errors.New("item already owned")
	// ErrInvalidDuration — session duration is zero or negative.
	ErrInvalidDuration = errors.New("session duration must be positive")
)

// Chat errors.
var (
	// ErrDailyLimitReached — the daily AI message quota is used up.
	ErrDailyLimitReached = errors.New("daily message limit reached")
)

// Auth / account errors.
var (
	// ErrNotAuthenticated — a mutating operation was invoked without an identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials — unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken — registration attempted with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound — the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
