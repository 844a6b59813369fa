package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/daybook/internal/adapter/http/dto"
	"github.com/iho/daybook/internal/domain"
	"github.com/iho/daybook/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetFinanceSummary(ctx context.Context, start, end *time.Time) (*usecase.FinanceSummary, error)
}

// TransactionHandler handles transaction-related HTTP requests. Mutations run
// through the retrier so transient serialization conflicts are retried at the
// edge rather than inside the engine.
type TransactionHandler struct {
	txnUC   TransactionService
	retrier usecase.Retrier
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService, retrier usecase.Retrier) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC, retrier: retrier}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid transaction date", err.Error())
		return
	}

	var txn *domain.Transaction
	err = h.retrier.Retry(r.Context(), func() error {
		var opErr error
		txn, opErr = h.txnUC.CreateTransaction(r.Context(), input)
		return opErr
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.txnUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists transactions with optional filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.TransactionFilter{
		Limit:  parseIntQuery(r, "limit", usecase.DefaultListLimit),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.TransactionKind(kind)
		if !k.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid transaction kind", kind)
			return
		}
		filter.Kind = &k
	}

	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		filter.AccountID = &accountID
	}

	start, err := parseDateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	filter.StartDate = start

	end, err := parseDateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}
	filter.EndDate = end

	txns, err := h.txnUC.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

// Update rewrites a transaction and reconciles account balances.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid transaction date", err.Error())
		return
	}

	var txn *domain.Transaction
	err = h.retrier.Retry(r.Context(), func() error {
		var opErr error
		txn, opErr = h.txnUC.UpdateTransaction(r.Context(), id, input)
		return opErr
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete removes a transaction, reverting its balance effects.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	err := h.retrier.Retry(r.Context(), func() error {
		return h.txnUC.DeleteTransaction(r.Context(), id)
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary returns income and expense totals for a date range.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}

	end, err := parseDateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	summary, err := h.txnUC.GetFinanceSummary(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get finance summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FinanceSummaryFromUseCase(summary))
}
