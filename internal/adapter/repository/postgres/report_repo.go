package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/usecase"
)

// ReportRepository implements usecase.ReportRepository. Read-only.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// FinanceTrend returns one point per day in the range, including days with
// no transactions.
func (r *ReportRepository) FinanceTrend(ctx context.Context, start, end time.Time) ([]usecase.TrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d::date,
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'expense'), 0)
		FROM generate_series($1::date, $2::date, '1 day') AS d
		LEFT JOIN transactions t
			ON t.transaction_date = d AND t.kind IN ('income', 'expense')
		GROUP BY d
		ORDER BY d`,
		timeToPgDate(start),
		timeToPgDate(end),
	)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var points []usecase.TrendPoint
	for rows.Next() {
		var (
			day     pgtype.Date
			income  pgtype.Numeric
			expense pgtype.Numeric
		)
		if err := rows.Scan(&day, &income, &expense); err != nil {
			return nil, err
		}

		in, out := numericToDecimal(income), numericToDecimal(expense)
		points = append(points, usecase.TrendPoint{
			Date:    day.Time,
			Income:  in,
			Expense: out,
			Net:     in.Sub(out),
		})
	}

	return points, rows.Err()
}

// ExpenseByCategory returns expense totals per category, largest first.
// Uncategorized expenses are grouped under an empty category ID.
func (r *ReportRepository) ExpenseByCategory(ctx context.Context, start, end time.Time) ([]usecase.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(t.category_id, ''), COALESCE(c.name, 'uncategorized'), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.kind = 'expense'
			AND t.transaction_date >= $1 AND t.transaction_date <= $2
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount) DESC`,
		timeToPgDate(start),
		timeToPgDate(end),
	)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var totals []usecase.CategoryTotal
	for rows.Next() {
		var (
			id    string
			name  string
			total pgtype.Numeric
		)
		if err := rows.Scan(&id, &name, &total); err != nil {
			return nil, err
		}

		totals = append(totals, usecase.CategoryTotal{
			CategoryID:   id,
			CategoryName: name,
			Total:        numericToDecimal(total),
		})
	}

	return totals, rows.Err()
}

// AccountTotals sums balances of active accounts per kind. Liability balances
// are negative while owing, so the liability total is the absolute sum.
func (r *ReportRepository) AccountTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var assets, liabilities pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(balance) FILTER (WHERE kind = 'asset'), 0),
			COALESCE(ABS(SUM(balance) FILTER (WHERE kind = 'liability')), 0)
		FROM accounts
		WHERE is_active = TRUE`,
	).Scan(&assets, &liabilities)
	if err != nil {
		return decimal.Zero, decimal.Zero, translateError(err)
	}

	return numericToDecimal(assets), numericToDecimal(liabilities), nil
}
