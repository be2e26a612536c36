package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

func TestValidate(t *testing.T) {
	valid := &RegisterRequest{Email: "u@example.com", Name: "User", Password: "longenough"}
	if err := Validate(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		req  any
	}{
		{"missing email", &RegisterRequest{Name: "User", Password: "longenough"}},
		{"malformed email", &RegisterRequest{Email: "not-an-email", Name: "User", Password: "longenough"}},
		{"short password", &RegisterRequest{Email: "u@example.com", Name: "User", Password: "short"}},
		{"bad crypto type", &AddCryptoTransactionRequest{
			CryptoAssetID: "ca-1",
			Type:          "hold",
			Amount:        decimal.NewFromInt(1),
			Date:          time.Now(),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.req); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestAddTransactionRequest_ToUseCaseInput(t *testing.T) {
	counter := "asset-2"
	category := "cat-1"
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	req := &AddTransactionRequest{
		AssetID:        "asset-1",
		CounterAssetID: &counter,
		CategoryID:     &category,
		Type:           "transfer",
		Amount:         decimal.RequireFromString("12.34"),
		Date:           date,
	}

	got := req.ToUseCaseInput()
	if got.AssetID != "asset-1" || got.Type != domain.TransactionTypeTransfer {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.CounterAssetID == nil || *got.CounterAssetID != counter {
		t.Fatalf("expected counter asset %q, got %+v", counter, got.CounterAssetID)
	}
	if got.CategoryID == nil || *got.CategoryID != category {
		t.Fatalf("expected category %q, got %+v", category, got.CategoryID)
	}
	if !got.Amount.Equal(decimal.RequireFromString("12.34")) || !got.Date.Equal(date) {
		t.Fatalf("unexpected amount or date: %+v", got)
	}
}

func TestChangeTransactionRequest_ToUseCaseInput(t *testing.T) {
	txType := "income"
	assetID := "asset-2"

	got := (&ChangeTransactionRequest{Type: &txType, AssetID: &assetID}).ToUseCaseInput("tx-1")
	if got.ID != "tx-1" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Type == nil || *got.Type != domain.TransactionTypeIncome {
		t.Fatalf("expected type to carry through, got %+v", got.Type)
	}
	if got.AssetID == nil || *got.AssetID != assetID {
		t.Fatalf("expected asset to carry through, got %+v", got.AssetID)
	}

	if got := (&ChangeTransactionRequest{}).ToUseCaseInput("tx-1"); got.Type != nil || got.AssetID != nil {
		t.Fatalf("expected empty patch, got %+v", got)
	}
}

func TestChangeCategoryRequest_ToUseCaseInput(t *testing.T) {
	title := "Groceries"
	kind := "expense"

	got := (&ChangeCategoryRequest{Title: &title, Kind: &kind}).ToUseCaseInput("cat-1")
	if got.ID != "cat-1" || got.Title == nil || *got.Title != title {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Kind == nil || *got.Kind != domain.TransactionTypeExpense {
		t.Fatalf("expected expense kind, got %+v", got.Kind)
	}

	if got := (&ChangeCategoryRequest{}).ToUseCaseInput("cat-1"); got.Kind != nil || got.Title != nil {
		t.Fatalf("expected empty patch, got %+v", got)
	}
}

func TestAddCurrencyRequest_ToUseCaseInput(t *testing.T) {
	req := &AddCurrencyRequest{
		Code:       "GLD",
		Name:       "Gold gram",
		Rate:       decimal.RequireFromString("74.5"),
		RateStable: true,
	}

	got := req.ToUseCaseInput()
	if got.Code != "GLD" || got.Name != "Gold gram" || !got.RateStable {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !got.Rate.Equal(decimal.RequireFromString("74.5")) {
		t.Fatalf("unexpected rate: %s", got.Rate)
	}
}
