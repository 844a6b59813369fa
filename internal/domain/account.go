package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes funds pools from debt pools.
type AccountKind string

const (
	AccountKindAsset     AccountKind = "asset"
	AccountKindLiability AccountKind = "liability"
)

// IsValid checks if the kind is a recognized account kind.
func (k AccountKind) IsValid() bool {
	return k == AccountKindAsset || k == AccountKindLiability
}

// Account represents a funds or debt pool that transactions move money
// through. Balance is always initial balance plus the signed sum of all
// applied transaction deltas; for liabilities a negative balance is the
// amount owed.
type Account struct {
	ID             string
	Name           string
	Kind           AccountKind
	SubKind        string
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	CreditLimit    *decimal.Decimal
	Icon           string
	Color          string
	Description    string
	IsActive       bool
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks account invariants that hold at creation time.
func (a *Account) Validate() error {
	if !a.Kind.IsValid() {
		return ErrInvalidAccountKind
	}
	return nil
}

// AvailableBalance computes the usable funds or credit at read time. For a
// liability with a credit limit the available balance is limit plus balance
// (balance is negative while owing). It is never persisted.
func (a *Account) AvailableBalance() decimal.Decimal {
	if a.Kind == AccountKindLiability && a.CreditLimit != nil {
		return a.Balance.Add(*a.CreditLimit)
	}
	return a.Balance
}
