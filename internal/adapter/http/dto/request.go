package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
)

const dateLayout = "2006-01-02"

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string           `json:"name"`
	Kind           string           `json:"kind"`
	SubKind        string           `json:"sub_kind,omitempty"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`
	Icon           string           `json:"icon,omitempty"`
	Color          string           `json:"color,omitempty"`
	Description    string           `json:"description,omitempty"`
	IsDefault      bool             `json:"is_default,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Kind:           domain.AccountKind(r.Kind),
		SubKind:        r.SubKind,
		InitialBalance: r.InitialBalance,
		CreditLimit:    r.CreditLimit,
		Icon:           r.Icon,
		Color:          r.Color,
		Description:    r.Description,
		IsDefault:      r.IsDefault,
	}
}

// UpdateAccountRequest represents a partial account update. Absent fields
// are left unchanged.
type UpdateAccountRequest struct {
	Name        *string          `json:"name,omitempty"`
	SubKind     *string          `json:"sub_kind,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Icon        *string          `json:"icon,omitempty"`
	Color       *string          `json:"color,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	IsDefault   *bool            `json:"is_default,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name:        r.Name,
		SubKind:     r.SubKind,
		CreditLimit: r.CreditLimit,
		Icon:        r.Icon,
		Color:       r.Color,
		Description: r.Description,
		IsActive:    r.IsActive,
		IsDefault:   r.IsDefault,
	}
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      *string         `json:"category_id,omitempty"`
	FromAccountID   *string         `json:"from_account_id,omitempty"`
	ToAccountID     *string         `json:"to_account_id,omitempty"`
	PlanID          *string         `json:"plan_id,omitempty"`
	ProjectID       *string         `json:"project_id,omitempty"`
	TransactionDate string          `json:"transaction_date,omitempty"`
	Description     string          `json:"description,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
}

// ToUseCaseInput converts to use case input. An empty transaction date
// defaults to today.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.CreateTransactionInput, error) {
	date := time.Now().UTC()
	if r.TransactionDate != "" {
		parsed, err := time.Parse(dateLayout, r.TransactionDate)
		if err != nil {
			return usecase.CreateTransactionInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, r.TransactionDate)
		}
		date = parsed
	}

	return usecase.CreateTransactionInput{
		Kind:            domain.TransactionKind(r.Kind),
		Amount:          r.Amount,
		CategoryID:      r.CategoryID,
		FromAccountID:   r.FromAccountID,
		ToAccountID:     r.ToAccountID,
		PlanID:          r.PlanID,
		ProjectID:       r.ProjectID,
		TransactionDate: date,
		Description:     r.Description,
		Tags:            r.Tags,
	}, nil
}

// UpdateTransactionRequest represents a partial transaction update. Absent
// fields are left unchanged.
type UpdateTransactionRequest struct {
	Kind            *string          `json:"kind,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	FromAccountID   *string          `json:"from_account_id,omitempty"`
	ToAccountID     *string          `json:"to_account_id,omitempty"`
	PlanID          *string          `json:"plan_id,omitempty"`
	ProjectID       *string          `json:"project_id,omitempty"`
	TransactionDate *string          `json:"transaction_date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() (usecase.UpdateTransactionInput, error) {
	input := usecase.UpdateTransactionInput{
		Amount:        r.Amount,
		CategoryID:    r.CategoryID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		PlanID:        r.PlanID,
		ProjectID:     r.ProjectID,
		Description:   r.Description,
		Tags:          r.Tags,
	}

	if r.Kind != nil {
		kind := domain.TransactionKind(*r.Kind)
		input.Kind = &kind
	}

	if r.TransactionDate != nil {
		parsed, err := time.Parse(dateLayout, *r.TransactionDate)
		if err != nil {
			return usecase.UpdateTransactionInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, *r.TransactionDate)
		}
		input.TransactionDate = &parsed
	}

	return input, nil
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Icon        string           `json:"icon,omitempty"`
	Color       string           `json:"color,omitempty"`
	ParentID    *string          `json:"parent_id,omitempty"`
	BudgetLimit *decimal.Decimal `json:"budget_limit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:        r.Name,
		Kind:        domain.CategoryKind(r.Kind),
		Icon:        r.Icon,
		Color:       r.Color,
		ParentID:    r.ParentID,
		BudgetLimit: r.BudgetLimit,
	}
}
