package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
	"github.com/iho/daybook/internal/usecase/mocks"
)

func strPtr(s string) *string                   { return &s }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func seedAccounts(accRepo *mocks.MockAccountRepository) {
	accRepo.Seed(&domain.Account{
		ID:      "acc-a",
		Name:    "Checking",
		Kind:    domain.AccountKindAsset,
		Balance: decimal.NewFromInt(1000),
	})
	accRepo.Seed(&domain.Account{
		ID:          "acc-b",
		Name:        "Credit Card",
		Kind:        domain.AccountKindLiability,
		Balance:     decimal.NewFromInt(-500),
		CreditLimit: decPtr(decimal.NewFromInt(1000)),
	})
}

func newTransactionUseCase() (*usecase.TransactionUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository) {
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewTransactionUseCase(txMgr, accRepo, txnRepo, idGen, nil)
	return uc, accRepo, txnRepo
}

func mustBalance(t *testing.T, accRepo *mocks.MockAccountRepository, id string, want int64) {
	t.Helper()
	acc, err := accRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("account %s: %v", id, err)
	}
	if !acc.Balance.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("account %s: expected balance %d, got %s", id, want, acc.Balance)
	}
}

func TestTransactionUseCase_CreateTransfer(t *testing.T) {
	uc, accRepo, _ := newTransactionUseCase()
	seedAccounts(accRepo)

	txn, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Kind:            domain.KindRepayment,
		Amount:          decimal.NewFromInt(200),
		FromAccountID:   strPtr("acc-a"),
		ToAccountID:     strPtr("acc-b"),
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID == "" {
		t.Fatal("expected generated ID")
	}

	mustBalance(t, accRepo, "acc-a", 800)
	mustBalance(t, accRepo, "acc-b", -300)

	accB, _ := accRepo.GetByID(context.Background(), "acc-b")
	if !accB.AvailableBalance().Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected available balance 700, got %s", accB.AvailableBalance())
	}
}

func TestTransactionUseCase_UpdateAmountReconcilesBalances(t *testing.T) {
	uc, accRepo, _ := newTransactionUseCase()
	seedAccounts(accRepo)

	txn, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Kind:            domain.KindRepayment,
		Amount:          decimal.NewFromInt(200),
		FromAccountID:   strPtr("acc-a"),
		ToAccountID:     strPtr("acc-b"),
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = uc.UpdateTransaction(context.Background(), txn.ID, usecase.UpdateTransactionInput{
		Amount: decPtr(decimal.NewFromInt(50)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// Net effect must equal a fresh 50 transfer.
	mustBalance(t, accRepo, "acc-a", 950)
	mustBalance(t, accRepo, "acc-b", -450)
}

func TestTransactionUseCase_UpdateEqualsDeleteAndRecreate(t *testing.T) {
	runUpdate := func() (decimal.Decimal, decimal.Decimal) {
		uc, accRepo, _ := newTransactionUseCase()
		seedAccounts(accRepo)

		txn, _ := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			Kind:            domain.KindExpense,
			Amount:          decimal.NewFromInt(120),
			FromAccountID:   strPtr("acc-a"),
			TransactionDate: time.Now(),
		})

		kind := domain.KindTransfer
		_, err := uc.UpdateTransaction(context.Background(), txn.ID, usecase.UpdateTransactionInput{
			Kind:        &kind,
			Amount:      decPtr(decimal.NewFromInt(80)),
			ToAccountID: strPtr("acc-b"),
		})
		if err != nil {
			panic(err)
		}

		a, _ := accRepo.GetByID(context.Background(), "acc-a")
		b, _ := accRepo.GetByID(context.Background(), "acc-b")
		return a.Balance, b.Balance
	}

	runDeleteRecreate := func() (decimal.Decimal, decimal.Decimal) {
		uc, accRepo, _ := newTransactionUseCase()
		seedAccounts(accRepo)

		txn, _ := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			Kind:            domain.KindExpense,
			Amount:          decimal.NewFromInt(120),
			FromAccountID:   strPtr("acc-a"),
			TransactionDate: time.Now(),
		})

		if err := uc.DeleteTransaction(context.Background(), txn.ID); err != nil {
			panic(err)
		}
		_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			Kind:            domain.KindTransfer,
			Amount:          decimal.NewFromInt(80),
			FromAccountID:   strPtr("acc-a"),
			ToAccountID:     strPtr("acc-b"),
			TransactionDate: time.Now(),
		})
		if err != nil {
			panic(err)
		}

		a, _ := accRepo.GetByID(context.Background(), "acc-a")
		b, _ := accRepo.GetByID(context.Background(), "acc-b")
		return a.Balance, b.Balance
	}

	ua, ub := runUpdate()
	da, db := runDeleteRecreate()

	if !ua.Equal(da) || !ub.Equal(db) {
		t.Fatalf("update (%s, %s) and delete+recreate (%s, %s) diverged", ua, ub, da, db)
	}
}

func TestTransactionUseCase_DeleteRevertsBalances(t *testing.T) {
	uc, accRepo, txnRepo := newTransactionUseCase()
	seedAccounts(accRepo)

	txn, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Kind:            domain.KindExpense,
		Amount:          decimal.NewFromInt(50),
		FromAccountID:   strPtr("acc-a"),
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mustBalance(t, accRepo, "acc-a", 950)

	if err := uc.DeleteTransaction(context.Background(), txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mustBalance(t, accRepo, "acc-a", 1000)

	if _, err := txnRepo.GetByID(context.Background(), txn.ID); err != domain.ErrTransactionNotFound {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionUseCase_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.CreateTransactionInput
		errorType error
	}{
		{
			name: "zero amount",
			input: usecase.CreateTransactionInput{
				Kind:   domain.KindExpense,
				Amount: decimal.Zero,
			},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.CreateTransactionInput{
				Kind:   domain.KindIncome,
				Amount: decimal.NewFromInt(-10),
			},
			errorType: domain.ErrInvalidAmount,
		},
		{
			name: "unknown kind",
			input: usecase.CreateTransactionInput{
				Kind:   domain.TransactionKind("loan"),
				Amount: decimal.NewFromInt(10),
			},
			errorType: domain.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, _ := newTransactionUseCase()
			seedAccounts(accRepo)

			_, err := uc.CreateTransaction(context.Background(), tt.input)
			if err != tt.errorType {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}

			// Nothing should have moved
			mustBalance(t, accRepo, "acc-a", 1000)
			mustBalance(t, accRepo, "acc-b", -500)
		})
	}
}

func TestTransactionUseCase_CreateUnknownAccountRollsBack(t *testing.T) {
	uc, accRepo, txnRepo := newTransactionUseCase()
	seedAccounts(accRepo)

	_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		Kind:            domain.KindTransfer,
		Amount:          decimal.NewFromInt(10),
		FromAccountID:   strPtr("acc-a"),
		ToAccountID:     strPtr("acc-missing"),
		TransactionDate: time.Now(),
	})
	if err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	txns, _ := txnRepo.List(context.Background(), usecase.TransactionFilter{})
	if len(txns) != 0 {
		t.Fatalf("expected no transaction rows, got %d", len(txns))
	}
}

func TestTransactionUseCase_ConcurrentCreatesNoLostUpdates(t *testing.T) {
	uc, accRepo, _ := newTransactionUseCase()
	seedAccounts(accRepo)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
				Kind:            domain.KindExpense,
				Amount:          decimal.NewFromInt(1),
				FromAccountID:   strPtr("acc-a"),
				TransactionDate: time.Now(),
			})
			if err != nil {
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	mustBalance(t, accRepo, "acc-a", 1000-n)
}

func TestTransactionUseCase_GetFinanceSummary(t *testing.T) {
	uc, _, txnRepo := newTransactionUseCase()

	txnRepo.SumByKindFunc = func(ctx context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
		return decimal.NewFromInt(15000), decimal.RequireFromString("404.50"), nil
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	summary, err := uc.GetFinanceSummary(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Balance.Equal(decimal.RequireFromString("14595.50")) {
		t.Errorf("expected balance 14595.50, got %s", summary.Balance)
	}
	if summary.Period != "2026-01-01 to 2026-01-31" {
		t.Errorf("unexpected period: %s", summary.Period)
	}
}

func TestTransactionUseCase_ListClampsLimit(t *testing.T) {
	uc, _, txnRepo := newTransactionUseCase()

	var gotLimit int
	txnRepo.ListFunc = func(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
		gotLimit = filter.Limit
		return nil, nil
	}

	if _, err := uc.ListTransactions(context.Background(), usecase.TransactionFilter{Limit: 0}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != usecase.DefaultListLimit {
		t.Errorf("expected default limit %d, got %d", usecase.DefaultListLimit, gotLimit)
	}

	if _, err := uc.ListTransactions(context.Background(), usecase.TransactionFilter{Limit: 10_000}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotLimit != usecase.MaxListLimit {
		t.Errorf("expected max limit %d, got %d", usecase.MaxListLimit, gotLimit)
	}
}

func TestDateRange(t *testing.T) {
	start := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	from, to := usecase.DateRange(&start, &end)
	if from != time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected from: %s", from)
	}
	if to != time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected to: %s", to)
	}

	// Missing start snaps to the first of the end's month.
	from, to = usecase.DateRange(nil, &end)
	if from != time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected defaulted from: %s", from)
	}
	if to != time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected to: %s", to)
	}

	// Missing end defaults to today.
	now := time.Now().UTC()
	_, to = usecase.DateRange(nil, nil)
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if to != want {
		t.Errorf("expected today %s, got %s", want, to)
	}
}

func TestTransactionUseCase_CreateGeneratesDistinctIDs(t *testing.T) {
	uc, accRepo, _ := newTransactionUseCase()
	seedAccounts(accRepo)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		txn, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
			Kind:            domain.KindIncome,
			Amount:          decimal.NewFromInt(10),
			ToAccountID:     strPtr("acc-a"),
			TransactionDate: time.Now(),
			Description:     fmt.Sprintf("income %d", i),
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[txn.ID] {
			t.Fatalf("duplicate ID %s", txn.ID)
		}
		seen[txn.ID] = true
	}
}
