package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/daybook/internal/domain"
)

const categoryColumns = `id, name, kind, icon, color, parent_id, budget_limit, created_at, updated_at`

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		category.ID,
		category.Name,
		string(category.Kind),
		category.Icon,
		category.Color,
		category.ParentID,
		decimalPtrToNumeric(category.BudgetLimit),
		timeToPgTimestamptz(category.CreatedAt),
		timeToPgTimestamptz(category.UpdatedAt),
	)

	return translateError(err)
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

// List lists categories, optionally filtered by kind.
func (r *CategoryRepository) List(ctx context.Context, kind *domain.CategoryKind) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`

	var args []any
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category    domain.Category
		kind        string
		budgetLimit pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&category.ID,
		&category.Name,
		&kind,
		&category.Icon,
		&category.Color,
		&category.ParentID,
		&budgetLimit,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, translateError(err)
	}

	category.Kind = domain.CategoryKind(kind)
	category.BudgetLimit = numericToDecimalPtr(budgetLimit)
	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return &category, nil
}
