package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/adapter/http/dto"
	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

type transactionServiceStub struct {
	addFn    func(ctx context.Context, user *domain.User, input usecase.AddTransactionInput) (*domain.Transaction, error)
	changeFn func(ctx context.Context, user *domain.User, input usecase.ChangeTransactionInput) (*domain.Transaction, error)
	getFn    func(ctx context.Context, user *domain.User, id string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
	deleteFn func(ctx context.Context, user *domain.User, id string) error
}

func (s *transactionServiceStub) AddTransaction(ctx context.Context, user *domain.User, input usecase.AddTransactionInput) (*domain.Transaction, error) {
	return s.addFn(ctx, user, input)
}

func (s *transactionServiceStub) ChangeTransaction(ctx context.Context, user *domain.User, input usecase.ChangeTransactionInput) (*domain.Transaction, error) {
	return s.changeFn(ctx, user, input)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, user *domain.User, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, user, id)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	return s.listFn(ctx, user, filter)
}

func (s *transactionServiceStub) DeleteTransaction(ctx context.Context, user *domain.User, id string) error {
	return s.deleteFn(ctx, user, id)
}

type reportServiceStub struct {
	totalFn      func(ctx context.Context, user *domain.User, input usecase.PeriodInput) (decimal.Decimal, error)
	categoriesFn func(ctx context.Context, user *domain.User, input usecase.PeriodInput) ([]usecase.TotalByCategory, error)
}

func (s *reportServiceStub) TotalByPeriod(ctx context.Context, user *domain.User, input usecase.PeriodInput) (decimal.Decimal, error) {
	return s.totalFn(ctx, user, input)
}

func (s *reportServiceStub) TotalCategoriesByPeriod(ctx context.Context, user *domain.User, input usecase.PeriodInput) ([]usecase.TotalByCategory, error) {
	return s.categoriesFn(ctx, user, input)
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	transaction := &domain.Transaction{
		ID:      "tx-1",
		UserID:  "user-1",
		AssetID: "asset-1",
		Type:    domain.TransactionTypeIncome,
		Amount:  decimal.NewFromInt(250),
		Date:    date,
	}

	var captured usecase.AddTransactionInput
	h := NewTransactionHandler(&transactionServiceStub{
		addFn: func(ctx context.Context, user *domain.User, input usecase.AddTransactionInput) (*domain.Transaction, error) {
			captured = input
			return transaction, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.AddTransactionRequest{
		AssetID: "asset-1",
		Type:    "income",
		Amount:  decimal.NewFromInt(250),
		Date:    date,
	})

	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body)), testUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AssetID != "asset-1" || captured.Type != domain.TransactionTypeIncome {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if !captured.Amount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected amount 250, got %s", captured.Amount)
	}
}

func TestTransactionHandler_Create_InsufficientData(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		addFn: func(ctx context.Context, user *domain.User, input usecase.AddTransactionInput) (*domain.Transaction, error) {
			t.Fatal("AddTransaction should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	body, _ := json.Marshal(map[string]string{"type": "income"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body)), testUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_List_RequiresPeriod(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			t.Fatal("ListTransactions should not be called without a period")
			return nil, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions", nil), testUser())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_List_PassesFilter(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			if filter.Type == nil || *filter.Type != domain.TransactionTypeExpense {
				t.Fatalf("expected expense filter, got %+v", filter.Type)
			}
			return []*domain.Transaction{}, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions?start=2024-03-01&end=2024-03-31&type=expense", nil), testUser())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionHandler_List_PlainDateEndCoversWholeDay(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, user *domain.User, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
			noon := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
			if filter.End.Before(noon) {
				t.Fatalf("expected end to cover March 31, got %v", filter.End)
			}
			if !filter.End.Before(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("expected end to stay inside March 31, got %v", filter.End)
			}
			return []*domain.Transaction{}, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions?start=2024-03-01&end=2024-03-31", nil), testUser())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionHandler_TotalByPeriod(t *testing.T) {
	h := NewTransactionHandler(nil, &reportServiceStub{
		totalFn: func(ctx context.Context, user *domain.User, input usecase.PeriodInput) (decimal.Decimal, error) {
			return decimal.NewFromInt(91), nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions/total?start=2024-03-01&end=2024-03-31", nil), testUser())
	rec := httptest.NewRecorder()

	h.TotalByPeriod(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Total.Equal(decimal.NewFromInt(91)) {
		t.Fatalf("expected total 91, got %s", resp.Total)
	}
}

func TestTransactionHandler_TotalByPeriod_NoBaseCurrency(t *testing.T) {
	h := NewTransactionHandler(nil, &reportServiceStub{
		totalFn: func(ctx context.Context, user *domain.User, input usecase.PeriodInput) (decimal.Decimal, error) {
			return decimal.Zero, domain.ErrBaseCurrencyNotSet
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions/total?start=2024-03-01&end=2024-03-31", nil), testUser())
	rec := httptest.NewRecorder()

	h.TotalByPeriod(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_TotalCategories_KeepsOrder(t *testing.T) {
	food := "cat-food"
	h := NewTransactionHandler(nil, &reportServiceStub{
		categoriesFn: func(ctx context.Context, user *domain.User, input usecase.PeriodInput) ([]usecase.TotalByCategory, error) {
			return []usecase.TotalByCategory{
				{CategoryID: &food, CategoryName: "food", Total: decimal.NewFromInt(-80)},
				{CategoryID: nil, CategoryName: domain.UncategorizedTitle, Total: decimal.NewFromInt(200)},
			}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/transactions/total/categories?start=2024-03-01&end=2024-03-31", nil), testUser())
	rec := httptest.NewRecorder()

	h.TotalCategoriesByPeriod(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []dto.CategoryTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp))
	}
	if resp[0].CategoryName != "food" || resp[1].CategoryName != domain.UncategorizedTitle {
		t.Fatalf("expected insertion order preserved, got %+v", resp)
	}
	if resp[1].CategoryID != nil {
		t.Fatal("expected nil category id for the uncategorized bucket")
	}
}
