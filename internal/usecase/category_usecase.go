package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
)

// CategoryUseCase handles category bookkeeping.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name        string
	Kind        domain.CategoryKind
	Icon        string
	Color       string
	ParentID    *string
	BudgetLimit *decimal.Decimal
}

// CreateCategory creates a category.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()

	category := &domain.Category{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Kind:        input.Kind,
		Icon:        input.Icon,
		Color:       input.Color,
		ParentID:    input.ParentID,
		BudgetLimit: input.BudgetLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListCategories lists categories, optionally filtered by kind.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, kind *domain.CategoryKind) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx, kind)
}
