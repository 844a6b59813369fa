package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountKind = errors.New("account kind must be asset or liability")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("unrecognized transaction kind")
	ErrInvalidDate         = errors.New("malformed date")

	// Category errors
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategoryKind = errors.New("category kind must be income or expense")

	// ErrConflict is returned when a unit of work could not commit because of
	// a concurrent conflicting update. The caller may retry.
	ErrConflict = errors.New("concurrent update conflict")
)
