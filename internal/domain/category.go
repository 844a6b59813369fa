package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKind restricts categories to income or expense bookkeeping.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// IsValid checks if the kind is a recognized category kind.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindIncome || k == CategoryKindExpense
}

// Category labels transactions. Categories form a tree via ParentID. Whether
// a transaction's kind matches its category's kind is not enforced.
type Category struct {
	ID          string
	Name        string
	Kind        CategoryKind
	Icon        string
	Color       string
	ParentID    *string
	BudgetLimit *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the category.
func (c *Category) Validate() error {
	if !c.Kind.IsValid() {
		return ErrInvalidCategoryKind
	}
	return nil
}
