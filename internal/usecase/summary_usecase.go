package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/infrastructure/metrics"
)

// SummaryUseCase produces read-only rollups over ledger and transaction
// state. It holds no invariants of its own and never mutates anything;
// results may be served from a short-lived cache.
type SummaryUseCase struct {
	reportRepo  ReportRepository
	txnRepo     TransactionRepository
	accountRepo AccountRepository
	cache       Cache
	metrics     *metrics.Metrics
}

// NewSummaryUseCase creates a new SummaryUseCase. cache may be nil.
func NewSummaryUseCase(
	reportRepo ReportRepository,
	txnRepo TransactionRepository,
	accountRepo AccountRepository,
	cache Cache,
	metrics *metrics.Metrics,
) *SummaryUseCase {
	return &SummaryUseCase{
		reportRepo:  reportRepo,
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		cache:       cache,
		metrics:     metrics,
	}
}

// Overview is the combined finance snapshot for a date range.
type Overview struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetWorth     decimal.Decimal `json:"net_worth"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
}

// GetOverview returns income/expense totals for the range plus current net
// worth. Cached results may lag writes by up to OverviewCacheTTL.
func (uc *SummaryUseCase) GetOverview(ctx context.Context, start, end *time.Time) (*Overview, error) {
	from, to := DateRange(start, end)

	cacheKey := fmt.Sprintf("overview:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if cached, ok := uc.fromCache(ctx, cacheKey); ok {
		if uc.metrics != nil {
			uc.metrics.SummaryCacheHits.Inc()
		}
		return cached, nil
	}
	if uc.metrics != nil && uc.cache != nil {
		uc.metrics.SummaryCacheMisses.Inc()
	}

	income, expense, err := uc.txnRepo.SumByKind(ctx, from, to)
	if err != nil {
		return nil, err
	}

	assets, liabilities, err := uc.reportRepo.AccountTotals(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalIncome:  income,
		TotalExpense: expense,
		NetWorth:     assets.Sub(liabilities),
		StartDate:    from.Format("2006-01-02"),
		EndDate:      to.Format("2006-01-02"),
	}

	uc.toCache(ctx, cacheKey, overview)

	return overview, nil
}

// GetFinanceTrend returns the daily income/expense/net series for the range.
func (uc *SummaryUseCase) GetFinanceTrend(ctx context.Context, start, end *time.Time) ([]TrendPoint, error) {
	from, to := DateRange(start, end)
	return uc.reportRepo.FinanceTrend(ctx, from, to)
}

// GetExpenseByCategory returns the expense distribution per category for the
// range, largest first.
func (uc *SummaryUseCase) GetExpenseByCategory(ctx context.Context, start, end *time.Time) ([]CategoryTotal, error) {
	from, to := DateRange(start, end)
	return uc.reportRepo.ExpenseByCategory(ctx, from, to)
}

func (uc *SummaryUseCase) fromCache(ctx context.Context, key string) (*Overview, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var overview Overview
	if err := json.Unmarshal([]byte(raw), &overview); err != nil {
		return nil, false
	}

	return &overview, true
}

func (uc *SummaryUseCase) toCache(ctx context.Context, key string, overview *Overview) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(overview)
	if err != nil {
		return
	}

	// Cache failures never fail the read path.
	_ = uc.cache.Set(ctx, key, string(raw), OverviewCacheTTL)
}
