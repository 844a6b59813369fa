package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Kind             string           `json:"kind"`
	SubKind          string           `json:"sub_kind,omitempty"`
	Balance          decimal.Decimal  `json:"balance"`
	AvailableBalance decimal.Decimal  `json:"available_balance"`
	InitialBalance   decimal.Decimal  `json:"initial_balance"`
	CreditLimit      *decimal.Decimal `json:"credit_limit,omitempty"`
	Icon             string           `json:"icon,omitempty"`
	Color            string           `json:"color,omitempty"`
	Description      string           `json:"description,omitempty"`
	IsActive         bool             `json:"is_active"`
	IsDefault        bool             `json:"is_default"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Kind:             string(a.Kind),
		SubKind:          a.SubKind,
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance(),
		InitialBalance:   a.InitialBalance,
		CreditLimit:      a.CreditLimit,
		Icon:             a.Icon,
		Color:            a.Color,
		Description:      a.Description,
		IsActive:         a.IsActive,
		IsDefault:        a.IsDefault,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

// BalanceFromSnapshot converts a balance snapshot to response.
func BalanceFromSnapshot(s *usecase.BalanceSnapshot) *BalanceResponse {
	return &BalanceResponse{
		Balance:          s.Balance,
		AvailableBalance: s.AvailableBalance,
	}
}

// AccountSummaryResponse represents the account summary in API responses.
type AccountSummaryResponse struct {
	TotalAssets       decimal.Decimal    `json:"total_assets"`
	TotalLiabilities  decimal.Decimal    `json:"total_liabilities"`
	NetWorth          decimal.Decimal    `json:"net_worth"`
	AssetAccounts     []*AccountResponse `json:"asset_accounts"`
	LiabilityAccounts []*AccountResponse `json:"liability_accounts"`
}

// AccountSummaryFromUseCase converts an account summary to response.
func AccountSummaryFromUseCase(s *usecase.AccountSummary) *AccountSummaryResponse {
	return &AccountSummaryResponse{
		TotalAssets:       s.TotalAssets,
		TotalLiabilities:  s.TotalLiabilities,
		NetWorth:          s.NetWorth,
		AssetAccounts:     AccountsFromDomain(s.AssetAccounts),
		LiabilityAccounts: AccountsFromDomain(s.LiabilityAccounts),
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      *string         `json:"category_id,omitempty"`
	FromAccountID   *string         `json:"from_account_id,omitempty"`
	ToAccountID     *string         `json:"to_account_id,omitempty"`
	PlanID          *string         `json:"plan_id,omitempty"`
	ProjectID       *string         `json:"project_id,omitempty"`
	TransactionDate string          `json:"transaction_date"`
	Description     string          `json:"description,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		CategoryID:      t.CategoryID,
		FromAccountID:   t.FromAccountID,
		ToAccountID:     t.ToAccountID,
		PlanID:          t.PlanID,
		ProjectID:       t.ProjectID,
		TransactionDate: t.TransactionDate.Format(dateLayout),
		Description:     t.Description,
		Tags:            t.Tags,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// FinanceSummaryResponse represents income and expense totals for a period.
type FinanceSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Period       string          `json:"period"`
}

// FinanceSummaryFromUseCase converts a finance summary to response.
func FinanceSummaryFromUseCase(s *usecase.FinanceSummary) *FinanceSummaryResponse {
	return &FinanceSummaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		Period:       s.Period,
	}
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Icon        string           `json:"icon,omitempty"`
	Color       string           `json:"color,omitempty"`
	ParentID    *string          `json:"parent_id,omitempty"`
	BudgetLimit *decimal.Decimal `json:"budget_limit,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        string(c.Kind),
		Icon:        c.Icon,
		Color:       c.Color,
		ParentID:    c.ParentID,
		BudgetLimit: c.BudgetLimit,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// TrendPointResponse is one day of a finance trend series.
type TrendPointResponse struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// TrendFromUseCase converts trend points to responses.
func TrendFromUseCase(points []usecase.TrendPoint) []*TrendPointResponse {
	result := make([]*TrendPointResponse, len(points))
	for i, p := range points {
		result[i] = &TrendPointResponse{
			Date:    p.Date.Format(dateLayout),
			Income:  p.Income,
			Expense: p.Expense,
			Net:     p.Net,
		}
	}
	return result
}

// CategoryTotalResponse is one slice of an expense distribution.
type CategoryTotalResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// CategoryTotalsFromUseCase converts category totals to responses.
func CategoryTotalsFromUseCase(totals []usecase.CategoryTotal) []*CategoryTotalResponse {
	result := make([]*CategoryTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = &CategoryTotalResponse{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Total:        t.Total,
		}
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ListCategoriesResponse wraps a category listing.
type ListCategoriesResponse struct {
	Categories []*CategoryResponse `json:"categories"`
	Total      int64               `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
