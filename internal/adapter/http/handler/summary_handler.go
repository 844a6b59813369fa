package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/daybook/internal/adapter/http/dto"
	"github.com/iho/daybook/internal/usecase"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	GetOverview(ctx context.Context, start, end *time.Time) (*usecase.Overview, error)
	GetFinanceTrend(ctx context.Context, start, end *time.Time) ([]usecase.TrendPoint, error)
	GetExpenseByCategory(ctx context.Context, start, end *time.Time) ([]usecase.CategoryTotal, error)
}

// SummaryHandler handles statistics and aggregation HTTP requests.
type SummaryHandler struct {
	summaryUC SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC}
}

// Overview returns income/expense totals and net worth for a date range.
func (h *SummaryHandler) Overview(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	overview, err := h.summaryUC.GetOverview(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get overview", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Trend returns a per-day income/expense series for a date range.
func (h *SummaryHandler) Trend(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	points, err := h.summaryUC.GetFinanceTrend(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get finance trend", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrendFromUseCase(points))
}

// ExpenseByCategory returns expense totals grouped by category.
func (h *SummaryHandler) ExpenseByCategory(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}

	totals, err := h.summaryUC.GetExpenseByCategory(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get expense distribution", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryTotalsFromUseCase(totals))
}

func (h *SummaryHandler) dateRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	start, err := parseDateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return nil, nil, false
	}

	end, err := parseDateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return nil, nil, false
	}

	return start, end, true
}
