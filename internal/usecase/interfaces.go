package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	Update(ctx context.Context, tx Transaction, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	// ApplyDelta atomically adds a signed amount to an account's balance.
	// Returns domain.ErrAccountNotFound when the account does not exist.
	ApplyDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) error
	// ClearDefault clears the default flag on every active account of the kind.
	ClearDefault(ctx context.Context, tx Transaction, kind domain.AccountKind) error
	// SetDefault marks one account as its kind's default.
	SetDefault(ctx context.Context, tx Transaction, id string, updatedAt time.Time) error
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Kind     *domain.AccountKind
	IsActive *bool
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	// SumByKind sums income and expense amounts over an inclusive date range.
	SumByKind(ctx context.Context, start, end time.Time) (income, expense decimal.Decimal, err error)
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Kind       *domain.TransactionKind
	CategoryID *string
	AccountID  *string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, kind *domain.CategoryKind) ([]*domain.Category, error)
}

// TrendPoint is one day of a finance trend series.
type TrendPoint struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// CategoryTotal is one slice of an expense distribution.
type CategoryTotal struct {
	CategoryID   string
	CategoryName string
	Total        decimal.Decimal
}

// ReportRepository defines read-only aggregation queries. It never mutates
// ledger or transaction state.
type ReportRepository interface {
	FinanceTrend(ctx context.Context, start, end time.Time) ([]TrendPoint, error)
	ExpenseByCategory(ctx context.Context, start, end time.Time) ([]CategoryTotal, error)
	// AccountTotals sums balances of active accounts per kind. Liabilities are
	// reported as the absolute amount owed.
	AccountTotals(ctx context.Context) (assets, liabilities decimal.Decimal, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier re-runs an operation on retryable conflicts. The engine itself
// never retries; callers opt in.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
