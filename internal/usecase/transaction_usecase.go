package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/infrastructure/metrics"
)

// TransactionUseCase records financial transactions and keeps account
// balances consistent with them. Every mutation runs as one unit of work
// spanning the ledger deltas and the transaction row; nothing partial ever
// commits.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateTransactionInput represents input for recording a transaction.
type CreateTransactionInput struct {
	Kind            domain.TransactionKind
	Amount          decimal.Decimal
	CategoryID      *string
	FromAccountID   *string
	ToAccountID     *string
	PlanID          *string
	ProjectID       *string
	TransactionDate time.Time
	Description     string
	Tags            []string
}

// CreateTransaction validates and records a transaction, applying its balance
// deltas to every referenced account in the same unit of work as the insert.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		Kind:            input.Kind,
		Amount:          input.Amount,
		CategoryID:      input.CategoryID,
		FromAccountID:   input.FromAccountID,
		ToAccountID:     input.ToAccountID,
		PlanID:          input.PlanID,
		ProjectID:       input.ProjectID,
		TransactionDate: truncateToDate(input.TransactionDate),
		Description:     input.Description,
		Tags:            input.Tags,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := txn.Validate(); err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionErrors.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.applyDeltas(ctx, tx, txn.Deltas(), now); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(txn.Kind)).Inc()
		amount, _ := txn.Amount.Float64()
		uc.metrics.TransactionAmount.WithLabelValues(string(txn.Kind)).Observe(amount)
	}

	return txn, nil
}

// UpdateTransactionInput carries partial updates. Nil fields stay unchanged;
// a nil Tags slice leaves tags alone.
type UpdateTransactionInput struct {
	Kind            *domain.TransactionKind
	Amount          *decimal.Decimal
	CategoryID      *string
	FromAccountID   *string
	ToAccountID     *string
	PlanID          *string
	ProjectID       *string
	TransactionDate *time.Time
	Description     *string
	Tags            []string
}

// UpdateTransaction rewrites a transaction. The deltas of the stored row are
// captured before any field changes, negated and applied, then the patched
// row's deltas are applied, all inside one unit of work.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	existing, err := uc.txnRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Snapshot the old delta set before mutating anything.
	oldDeltas := existing.Deltas()

	updated := *existing
	applyPatch(&updated, input)
	updated.UpdatedAt = now

	if err := updated.Validate(); err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionErrors.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	// Revert then reapply in one sorted pass so locks are always taken in
	// the same account order.
	deltas := append(domain.ReverseDeltas(oldDeltas), updated.Deltas()...)
	if err := uc.applyDeltas(ctx, tx, deltas, now); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(ctx, tx, &updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	return &updated, nil
}

// DeleteTransaction removes a transaction after backing its deltas out of
// every affected account.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	existing, err := uc.txnRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.applyDeltas(ctx, tx, domain.ReverseDeltas(existing.Deltas()), now); err != nil {
		return err
	}

	if err := uc.txnRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactions lists transactions newest-first with optional filters.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return uc.txnRepo.List(ctx, filter)
}

// FinanceSummary is the income/expense rollup over a date range.
type FinanceSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	Period       string
}

// GetFinanceSummary sums income and expense over an inclusive date range.
// Missing bounds default to the current calendar month up to today.
func (uc *TransactionUseCase) GetFinanceSummary(ctx context.Context, start, end *time.Time) (*FinanceSummary, error) {
	from, to := DateRange(start, end)

	income, expense, err := uc.txnRepo.SumByKind(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &FinanceSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		Period:       fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
	}, nil
}

// applyDeltas applies signed balance changes to the referenced accounts,
// sorted by account ID so concurrent units of work lock rows in the same
// order.
func (uc *TransactionUseCase) applyDeltas(ctx context.Context, tx Transaction, deltas []domain.BalanceDelta, now time.Time) error {
	sorted := make([]domain.BalanceDelta, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AccountID < sorted[j].AccountID })

	for _, d := range sorted {
		if err := uc.accountRepo.ApplyDelta(ctx, tx, d.AccountID, d.Amount, now); err != nil {
			return err
		}
	}

	return nil
}

func applyPatch(txn *domain.Transaction, input UpdateTransactionInput) {
	if input.Kind != nil {
		txn.Kind = *input.Kind
	}
	if input.Amount != nil {
		txn.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		txn.CategoryID = input.CategoryID
	}
	if input.FromAccountID != nil {
		txn.FromAccountID = input.FromAccountID
	}
	if input.ToAccountID != nil {
		txn.ToAccountID = input.ToAccountID
	}
	if input.PlanID != nil {
		txn.PlanID = input.PlanID
	}
	if input.ProjectID != nil {
		txn.ProjectID = input.ProjectID
	}
	if input.TransactionDate != nil {
		txn.TransactionDate = truncateToDate(*input.TransactionDate)
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Tags != nil {
		txn.Tags = input.Tags
	}
}

// DateRange fills missing bounds: no end means today, no start means the
// first day of the end's month.
func DateRange(start, end *time.Time) (time.Time, time.Time) {
	to := time.Now().UTC()
	if end != nil {
		to = *end
	}
	to = truncateToDate(to)

	from := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start != nil {
		from = truncateToDate(*start)
	}

	return from, to
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
