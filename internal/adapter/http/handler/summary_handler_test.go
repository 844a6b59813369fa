package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/daybook/internal/adapter/http/dto"
	"github.com/iho/daybook/internal/usecase"
)

type summaryServiceStub struct {
	overviewFn func(ctx context.Context, start, end *time.Time) (*usecase.Overview, error)
	trendFn    func(ctx context.Context, start, end *time.Time) ([]usecase.TrendPoint, error)
	expenseFn  func(ctx context.Context, start, end *time.Time) ([]usecase.CategoryTotal, error)
}

func (s *summaryServiceStub) GetOverview(ctx context.Context, start, end *time.Time) (*usecase.Overview, error) {
	return s.overviewFn(ctx, start, end)
}

func (s *summaryServiceStub) GetFinanceTrend(ctx context.Context, start, end *time.Time) ([]usecase.TrendPoint, error) {
	return s.trendFn(ctx, start, end)
}

func (s *summaryServiceStub) GetExpenseByCategory(ctx context.Context, start, end *time.Time) ([]usecase.CategoryTotal, error) {
	return s.expenseFn(ctx, start, end)
}

func TestSummaryHandler_Overview(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		overviewFn: func(ctx context.Context, start, end *time.Time) (*usecase.Overview, error) {
			require.NotNil(t, start)
			require.NotNil(t, end)
			return &usecase.Overview{
				TotalIncome:  decimal.NewFromInt(3000),
				TotalExpense: decimal.NewFromInt(1200),
				NetWorth:     decimal.NewFromInt(7500),
				StartDate:    "2026-01-01",
				EndDate:      "2026-01-31",
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/overview?start_date=2026-01-01&end_date=2026-01-31", nil)
	rec := httptest.NewRecorder()

	handler.Overview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp usecase.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NetWorth.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, "2026-01-01", resp.StartDate)
}

func TestSummaryHandler_Overview_DefaultsRange(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		overviewFn: func(ctx context.Context, start, end *time.Time) (*usecase.Overview, error) {
			assert.Nil(t, start)
			assert.Nil(t, end)
			return &usecase.Overview{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/overview", nil)
	rec := httptest.NewRecorder()

	handler.Overview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSummaryHandler_Overview_BadDate(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		overviewFn: func(ctx context.Context, start, end *time.Time) (*usecase.Overview, error) {
			t.Fatal("GetOverview should not be called for malformed date")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/overview?start_date=Jan-1", nil)
	rec := httptest.NewRecorder()

	handler.Overview(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryHandler_Trend(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		trendFn: func(ctx context.Context, start, end *time.Time) ([]usecase.TrendPoint, error) {
			return []usecase.TrendPoint{
				{
					Date:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
					Income:  decimal.NewFromInt(100),
					Expense: decimal.NewFromInt(40),
					Net:     decimal.NewFromInt(60),
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/trend?start_date=2026-01-01&end_date=2026-01-31", nil)
	rec := httptest.NewRecorder()

	handler.Trend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []*dto.TrendPointResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2026-01-01", resp[0].Date)
	assert.True(t, resp[0].Net.Equal(decimal.NewFromInt(60)))
}

func TestSummaryHandler_ExpenseByCategory(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		expenseFn: func(ctx context.Context, start, end *time.Time) ([]usecase.CategoryTotal, error) {
			return []usecase.CategoryTotal{
				{CategoryID: "cat-1", CategoryName: "Groceries", Total: decimal.NewFromInt(320)},
				{CategoryID: "cat-2", CategoryName: "Transport", Total: decimal.NewFromInt(80)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/expense-by-category", nil)
	rec := httptest.NewRecorder()

	handler.ExpenseByCategory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []*dto.CategoryTotalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Groceries", resp[0].CategoryName)
}

func TestSummaryHandler_Overview_ServiceError(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		overviewFn: func(ctx context.Context, start, end *time.Time) (*usecase.Overview, error) {
			return nil, errors.New("db error")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/overview", nil)
	rec := httptest.NewRecorder()

	handler.Overview(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
