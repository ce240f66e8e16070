package ledger

import "errors"

// Operation outcomes surfaced to callers. Match with errors.Is.
var (
	// ErrNotFound means the symbol is not in the catalog, or no owned
	// position exists for it.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds means the balance does not cover the price.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict means the username is already registered.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput means empty credentials were supplied.
	ErrInvalidInput = errors.New("invalid input")
)
