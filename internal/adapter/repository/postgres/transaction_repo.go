package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
)

const transactionColumns = `id, kind, amount, category_id, from_account_id, to_account_id,
	plan_id, project_id, transaction_date, description, tags, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction row inside an existing transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	tags, err := marshalTags(txn.Tags)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		txn.ID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		txn.CategoryID,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.PlanID,
		txn.ProjectID,
		timeToPgDate(txn.TransactionDate),
		txn.Description,
		tags,
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return translateError(err)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()
	row := pgxTx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
	return scanTransaction(row)
}

// Update rewrites a transaction row inside an existing transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	tags, err := marshalTags(txn.Tags)
	if err != nil {
		return err
	}

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions
		SET kind = $2, amount = $3, category_id = $4, from_account_id = $5,
			to_account_id = $6, plan_id = $7, project_id = $8, transaction_date = $9,
			description = $10, tags = $11, updated_at = $12
		WHERE id = $1`,
		txn.ID,
		string(txn.Kind),
		decimalToNumeric(txn.Amount),
		txn.CategoryID,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.PlanID,
		txn.ProjectID,
		timeToPgDate(txn.TransactionDate),
		txn.Description,
		tags,
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row inside an existing transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List lists transactions newest-first with optional filters.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conds = append(conds, fmt.Sprintf("(from_account_id = $%d OR to_account_id = $%d)", len(args), len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, timeToPgDate(*filter.StartDate))
		conds = append(conds, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, timeToPgDate(*filter.EndDate))
		conds = append(conds, fmt.Sprintf("transaction_date <= $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// CountByAccount counts transactions referencing the account on either side.
func (r *TransactionRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}

	return count, nil
}

// SumByKind sums income and expense amounts over an inclusive date range.
func (r *TransactionRepository) SumByKind(ctx context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE kind IN ('income', 'expense')
			AND transaction_date >= $1 AND transaction_date <= $2
		GROUP BY kind`,
		timeToPgDate(start),
		timeToPgDate(end),
	)
	if err != nil {
		return decimal.Zero, decimal.Zero, translateError(err)
	}
	defer rows.Close()

	income, expense := decimal.Zero, decimal.Zero
	for rows.Next() {
		var (
			kind  string
			total pgtype.Numeric
		)
		if err := rows.Scan(&kind, &total); err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		switch domain.TransactionKind(kind) {
		case domain.KindIncome:
			income = numericToDecimal(total)
		case domain.KindExpense:
			expense = numericToDecimal(total)
		}
	}

	return income, expense, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		kind      string
		amount    pgtype.Numeric
		txnDate   pgtype.Date
		tags      []byte
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&kind,
		&amount,
		&txn.CategoryID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&txn.PlanID,
		&txn.ProjectID,
		&txnDate,
		&txn.Description,
		&tags,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, translateError(err)
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.Amount = numericToDecimal(amount)
	txn.TransactionDate = txnDate.Time
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &txn.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}

	return &txn, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}
