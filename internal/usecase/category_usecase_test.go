package usecase_test

import (
	"context"
	"testing"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
	"github.com/iho/daybook/internal/usecase/mocks"
)

func TestCategoryUseCase_CreateCategory(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

	category, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{
		Name: "Groceries",
		Kind: domain.CategoryKindExpense,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.ID == "" {
		t.Error("expected generated ID")
	}
	if category.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestCategoryUseCase_CreateCategoryInvalidKind(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

	_, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{
		Name: "Broken",
		Kind: domain.CategoryKind("transfer"),
	})
	if err != domain.ErrInvalidCategoryKind {
		t.Fatalf("expected ErrInvalidCategoryKind, got %v", err)
	}
}

func TestCategoryUseCase_ListFiltersByKind(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(repo, mocks.NewMockIDGenerator())

	_, _ = uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: "Salary", Kind: domain.CategoryKindIncome})
	_, _ = uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Name: "Rent", Kind: domain.CategoryKindExpense})

	kind := domain.CategoryKindIncome
	categories, err := uc.ListCategories(context.Background(), &kind)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Salary" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}
