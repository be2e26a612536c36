package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/finances/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"asset not found", domain.ErrAssetNotFound, http.StatusNotFound},
		{"crypto asset not found", domain.ErrCryptoAssetNotFound, http.StatusNotFound},
		{"currency exists", domain.ErrCurrencyExists, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"cant be base", domain.ErrCurrencyCantBeBase, http.StatusBadRequest},
		{"asset cant be deleted", domain.ErrAssetCantBeDeleted, http.StatusBadRequest},
		{"insufficient crypto asset", domain.ErrInsufficientCryptoAsset, http.StatusBadRequest},
		{"base currency not set", domain.ErrBaseCurrencyNotSet, http.StatusBadRequest},
		{"invalid period", domain.ErrInvalidPeriod, http.StatusBadRequest},
		{"wrapped validation error", domain.ValidateTitle(""), http.StatusBadRequest},
		{"rate unavailable", domain.ErrRateUnavailable, http.StatusUnprocessableEntity},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseTimeQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2024-03-01&end=2024-03-31T23:59:59Z", nil)

	start, ok := parseTimeQuery(req, "start")
	if !ok {
		t.Fatal("expected start to parse")
	}
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}

	end, ok := parseTimeQuery(req, "end")
	if !ok {
		t.Fatal("expected end to parse")
	}
	if end.Day() != 31 || end.Hour() != 23 {
		t.Fatalf("unexpected end: %v", end)
	}

	if _, ok := parseTimeQuery(req, "missing"); ok {
		t.Fatal("expected missing parameter to report false")
	}

	bad := httptest.NewRequest(http.MethodGet, "/?start=yesterday", nil)
	if _, ok := parseTimeQuery(bad, "start"); ok {
		t.Fatal("expected unparseable value to report false")
	}
}

func TestParseEndQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?end=2024-03-31", nil)

	end, ok := parseEndQuery(req, "end")
	if !ok {
		t.Fatal("expected end to parse")
	}

	// A plain date must cover the whole day, so a transaction at noon on
	// the end date still falls inside the period.
	noon := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	if end.Before(noon) {
		t.Fatalf("expected end to include %v, got %v", noon, end)
	}
	if !end.Before(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected end to stay inside March 31, got %v", end)
	}

	precise := httptest.NewRequest(http.MethodGet, "/?end=2024-03-31T10:00:00Z", nil)
	end, ok = parseEndQuery(precise, "end")
	if !ok {
		t.Fatal("expected end to parse")
	}
	if !end.Equal(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected explicit timestamp to pass through, got %v", end)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x", nil)

	if got := parseIntQuery(req, "limit", 20); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
}
