package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iho/finances/internal/adapter/http/dto"
	"github.com/iho/finances/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCurrencyNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrPortfolioNotFound),
		errors.Is(err, domain.ErrCryptoCurrencyNotFound),
		errors.Is(err, domain.ErrCryptoAssetNotFound),
		errors.Is(err, domain.ErrCryptoTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrCurrencyExists),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrPortfolioExists),
		errors.Is(err, domain.ErrCryptoCurrencyExists),
		errors.Is(err, domain.ErrCryptoAssetExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCurrencyCantBeBase),
		errors.Is(err, domain.ErrTransactionCantBeChanged),
		errors.Is(err, domain.ErrAssetCantBeDeleted),
		errors.Is(err, domain.ErrCurrencyInUse),
		errors.Is(err, domain.ErrInsufficientCryptoAsset),
		errors.Is(err, domain.ErrBaseCurrencyNotSet),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrSameAsset),
		errors.Is(err, domain.ErrCounterAssetRequired),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidCurrencyCode),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses a time query parameter, accepting RFC 3339 or a
// plain date.
func parseTimeQuery(r *http.Request, key string) (time.Time, bool) {
	t, _, ok := parseTimeValue(r.URL.Query().Get(key))
	return t, ok
}

// parseEndQuery parses a period end. A plain date covers the whole day,
// so it is pushed to the last instant before midnight.
func parseEndQuery(r *http.Request, key string) (time.Time, bool) {
	t, dateOnly, ok := parseTimeValue(r.URL.Query().Get(key))
	if !ok {
		return time.Time{}, false
	}

	if dateOnly {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, true
}

func parseTimeValue(val string) (time.Time, bool, bool) {
	if val == "" {
		return time.Time{}, false, false
	}

	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, false, true
	}

	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, false, false
	}

	return t, true, true
}

// parseTypeQuery parses an optional transaction type query parameter.
func parseTypeQuery(r *http.Request) *domain.TransactionType {
	val := r.URL.Query().Get("type")
	if val == "" {
		return nil
	}

	t := domain.TransactionType(val)
	return &t
}
