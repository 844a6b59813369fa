package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind determines which account side a transaction touches.
type TransactionKind string

const (
	KindIncome    TransactionKind = "income"
	KindExpense   TransactionKind = "expense"
	KindTransfer  TransactionKind = "transfer"
	KindRepayment TransactionKind = "repayment"
)

// IsValid checks if the kind is a recognized transaction kind.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer, KindRepayment:
		return true
	}
	return false
}

// Transaction represents a financial event. Amount is always positive; the
// kind and the populated account references decide the signed balance deltas.
type Transaction struct {
	ID              string
	Kind            TransactionKind
	Amount          decimal.Decimal
	CategoryID      *string
	FromAccountID   *string
	ToAccountID     *string
	PlanID          *string
	ProjectID       *string
	TransactionDate time.Time
	Description     string
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates the transaction.
func (t *Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// BalanceDelta is the signed balance change a transaction applies to one
// account.
type BalanceDelta struct {
	AccountID string
	Amount    decimal.Decimal
}

// Deltas derives the signed balance changes implied by the transaction kind:
//
//	income     ->                 +amount(to)
//	expense    -> -amount(from)
//	transfer   -> -amount(from),  +amount(to)
//	repayment  -> -amount(from),  +amount(to)
//
// Only accounts that are actually referenced receive a delta; a transaction
// with neither account set has no balance effect.
func (t *Transaction) Deltas() []BalanceDelta {
	var deltas []BalanceDelta

	switch t.Kind {
	case KindIncome:
		if t.ToAccountID != nil {
			deltas = append(deltas, BalanceDelta{AccountID: *t.ToAccountID, Amount: t.Amount})
		}
	case KindExpense:
		if t.FromAccountID != nil {
			deltas = append(deltas, BalanceDelta{AccountID: *t.FromAccountID, Amount: t.Amount.Neg()})
		}
	case KindTransfer, KindRepayment:
		if t.FromAccountID != nil {
			deltas = append(deltas, BalanceDelta{AccountID: *t.FromAccountID, Amount: t.Amount.Neg()})
		}
		if t.ToAccountID != nil {
			deltas = append(deltas, BalanceDelta{AccountID: *t.ToAccountID, Amount: t.Amount})
		}
	}

	return deltas
}

// ReverseDeltas negates a delta set so a previously applied transaction can
// be backed out.
func ReverseDeltas(deltas []BalanceDelta) []BalanceDelta {
	reversed := make([]BalanceDelta, len(deltas))
	for i, d := range deltas {
		reversed[i] = BalanceDelta{AccountID: d.AccountID, Amount: d.Amount.Neg()}
	}
	return reversed
}
