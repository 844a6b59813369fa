package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/api/v1/accounts/01HXYZ", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/01HXYZ/balance", "/api/v1/accounts/:id/balance"},
		{"/api/v1/accounts/01HXYZ/default", "/api/v1/accounts/:id/default"},
		{"/api/v1/accounting/transactions", "/api/v1/accounting/transactions"},
		{"/api/v1/accounting/transactions/01HABC", "/api/v1/accounting/transactions/:id"},
		{"/api/v1/categories/01HDEF", "/api/v1/categories/:id"},
		{"/api/v1/statistics/overview", "/api/v1/statistics/overview"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rr.Code)
	}
}
