package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/infrastructure/metrics"
)

// AccountUseCase owns account state. It is the only place that flips the
// per-kind default flag, and balance writes go exclusively through
// AccountRepository.ApplyDelta invoked by the transaction engine.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Kind           domain.AccountKind
	SubKind        string
	InitialBalance decimal.Decimal
	CreditLimit    *decimal.Decimal
	Icon           string
	Color          string
	Description    string
	IsDefault      bool
}

// CreateAccount creates an account with balance equal to its initial balance.
// When the account is marked default, other defaults of the same kind are
// cleared in the same unit of work.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Kind:           input.Kind,
		SubKind:        input.SubKind,
		Balance:        input.InitialBalance,
		InitialBalance: input.InitialBalance,
		CreditLimit:    input.CreditLimit,
		Icon:           input.Icon,
		Color:          input.Color,
		Description:    input.Description,
		IsActive:       true,
		IsDefault:      input.IsDefault,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if !input.IsDefault {
		if err := uc.accountRepo.Create(ctx, account); err != nil {
			return nil, err
		}
		if uc.metrics != nil {
			uc.metrics.AccountsCreated.Inc()
		}
		return account, nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.ClearDefault(ctx, tx, account.Kind); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// BalanceSnapshot is the stored balance plus the derived available balance.
type BalanceSnapshot struct {
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
}

// GetBalance returns the account's balance and its derived available balance.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (*BalanceSnapshot, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BalanceSnapshot{
		Balance:          account.Balance,
		AvailableBalance: account.AvailableBalance(),
	}, nil
}

// ListAccounts lists accounts, defaults first.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, filter AccountFilter) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, filter)
}

// UpdateAccountInput carries partial account updates. Nil fields stay
// unchanged. Balance is not patchable; it only moves through deltas.
type UpdateAccountInput struct {
	Name        *string
	SubKind     *string
	CreditLimit *decimal.Decimal
	Icon        *string
	Color       *string
	Description *string
	IsActive    *bool
	IsDefault   *bool
}

// UpdateAccount patches account fields. Setting IsDefault clears the flag on
// the kind's other accounts inside the same unit of work.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if input.IsDefault != nil && *input.IsDefault && !account.IsDefault {
		if err := uc.accountRepo.ClearDefault(ctx, tx, account.Kind); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.SubKind != nil {
		account.SubKind = *input.SubKind
	}
	if input.CreditLimit != nil {
		account.CreditLimit = input.CreditLimit
	}
	if input.Icon != nil {
		account.Icon = *input.Icon
	}
	if input.Color != nil {
		account.Color = *input.Color
	}
	if input.Description != nil {
		account.Description = *input.Description
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	if input.IsDefault != nil {
		account.IsDefault = *input.IsDefault
	}
	account.UpdatedAt = now

	if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// SetDefaultAccount makes one account its kind's default, clearing every
// other default of that kind, as a single atomic step.
func (uc *AccountUseCase) SetDefaultAccount(ctx context.Context, id string) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.ClearDefault(ctx, tx, account.Kind); err != nil {
		return err
	}

	if err := uc.accountRepo.SetDefault(ctx, tx, id, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("set_default").Inc()
	}

	return nil
}

// DeleteAccount soft-deletes accounts with transaction history and hard
// deletes the rest.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := uc.txnRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	if count == 0 {
		if err := uc.accountRepo.Delete(ctx, id); err != nil {
			return err
		}
		if uc.metrics != nil {
			uc.metrics.AccountOperations.WithLabelValues("delete").Inc()
		}
		return nil
	}

	active := false
	if _, err = uc.UpdateAccount(ctx, account.ID, UpdateAccountInput{IsActive: &active}); err != nil {
		return err
	}
	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("deactivate").Inc()
	}
	return nil
}

// AccountSummary rolls up active accounts by kind.
type AccountSummary struct {
	TotalAssets       decimal.Decimal
	TotalLiabilities  decimal.Decimal
	NetWorth          decimal.Decimal
	AssetAccounts     []*domain.Account
	LiabilityAccounts []*domain.Account
}

// GetSummary computes assets, liabilities and net worth from active accounts.
// Liability balances are negative while owing, so the liability total is the
// absolute sum.
func (uc *AccountUseCase) GetSummary(ctx context.Context) (*AccountSummary, error) {
	active := true
	accounts, err := uc.accountRepo.List(ctx, AccountFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}

	for _, account := range accounts {
		if account.Kind == domain.AccountKindAsset {
			summary.TotalAssets = summary.TotalAssets.Add(account.Balance)
			summary.AssetAccounts = append(summary.AssetAccounts, account)
		} else {
			summary.TotalLiabilities = summary.TotalLiabilities.Add(account.Balance.Abs())
			summary.LiabilityAccounts = append(summary.LiabilityAccounts, account)
		}
	}

	summary.NetWorth = summary.TotalAssets.Sub(summary.TotalLiabilities)

	return summary, nil
}
