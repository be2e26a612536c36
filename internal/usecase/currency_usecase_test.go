package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
	"github.com/iho/finances/internal/usecase/mocks"
)

func TestCurrencyUseCase_AddCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.AddCurrencyInput
		wantErr error
	}{
		{
			name:  "valid custom currency",
			input: usecase.AddCurrencyInput{Code: "btc", Name: "Bitcoin", Rate: dec("65000")},
		},
		{
			name:    "code too short",
			input:   usecase.AddCurrencyInput{Code: "B", Rate: dec("1")},
			wantErr: domain.ErrInvalidCurrencyCode,
		},
		{
			name:    "zero rate",
			input:   usecase.AddCurrencyInput{Code: "BTC", Rate: dec("0")},
			wantErr: domain.ErrRateUnavailable,
		},
		{
			name:    "negative rate",
			input:   usecase.AddCurrencyInput{Code: "BTC", Rate: dec("-1")},
			wantErr: domain.ErrRateUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewCurrencyUseCase(mocks.NewMockCurrencyRepository(), mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())
			user := &domain.User{ID: "user-1"}

			currency, err := uc.AddCurrency(context.Background(), user, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "BTC", currency.Code)
			assert.True(t, currency.IsCustom)
			require.NotNil(t, currency.UserID)
			assert.Equal(t, "user-1", *currency.UserID)
		})
	}
}

func TestCurrencyUseCase_AddCurrency_DuplicateCode(t *testing.T) {
	repo := mocks.NewMockCurrencyRepository()
	uc := usecase.NewCurrencyUseCase(repo, mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())
	user := &domain.User{ID: "user-1"}

	input := usecase.AddCurrencyInput{Code: "BTC", Rate: dec("65000")}

	_, err := uc.AddCurrency(context.Background(), user, input)
	require.NoError(t, err)

	_, err = uc.AddCurrency(context.Background(), user, input)
	require.ErrorIs(t, err, domain.ErrCurrencyExists)
}

func TestCurrencyUseCase_ChangeCurrency(t *testing.T) {
	ownerID := "user-1"
	otherID := "user-2"

	newName := "renamed"

	tests := []struct {
		name     string
		currency *domain.Currency
		actorID  string
		wantErr  error
	}{
		{
			name:     "owner changes own custom currency",
			currency: &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, UserID: &ownerID, Rate: dec("1")},
			actorID:  ownerID,
		},
		{
			name:     "default currency is immutable",
			currency: &domain.Currency{ID: "cur-1", Code: "USD", Rate: dec("1")},
			actorID:  ownerID,
			wantErr:  domain.ErrCurrencyNotFound,
		},
		{
			name:     "foreign custom currency is invisible",
			currency: &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, UserID: &otherID, Rate: dec("1")},
			actorID:  ownerID,
			wantErr:  domain.ErrCurrencyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCurrencyRepository()
			require.NoError(t, repo.Create(context.Background(), tt.currency))

			uc := usecase.NewCurrencyUseCase(repo, mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())

			got, err := uc.ChangeCurrency(context.Background(), &domain.User{ID: tt.actorID}, usecase.ChangeCurrencyInput{
				ID:   "cur-1",
				Name: &newName,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, newName, got.Name)
		})
	}
}

func TestCurrencyUseCase_SetBaseCurrency(t *testing.T) {
	ownerID := "user-1"
	otherID := "user-2"

	tests := []struct {
		name     string
		currency *domain.Currency
		wantErr  error
	}{
		{
			name:     "default currency qualifies",
			currency: &domain.Currency{ID: "cur-1", Code: "USD", Rate: dec("1")},
		},
		{
			name:     "rate-stable custom currency qualifies",
			currency: &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, RateStable: true, UserID: &ownerID, Rate: dec("2")},
		},
		{
			name:     "custom currency with derived rate is rejected",
			currency: &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, UserID: &ownerID, Rate: dec("2")},
			wantErr:  domain.ErrCurrencyCantBeBase,
		},
		{
			name:     "foreign custom currency is invisible",
			currency: &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, RateStable: true, UserID: &otherID, Rate: dec("2")},
			wantErr:  domain.ErrCurrencyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			currencyRepo := mocks.NewMockCurrencyRepository()
			require.NoError(t, currencyRepo.Create(ctx, tt.currency))

			userRepo := mocks.NewMockUserRepository()
			user := &domain.User{ID: ownerID}
			require.NoError(t, userRepo.Create(ctx, user))

			uc := usecase.NewCurrencyUseCase(currencyRepo, userRepo, mocks.NewMockIDGenerator())

			err := uc.SetBaseCurrency(ctx, user, "cur-1")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			stored, err := userRepo.GetByID(ctx, ownerID)
			require.NoError(t, err)
			require.NotNil(t, stored.BaseCurrencyID)
			assert.Equal(t, "cur-1", *stored.BaseCurrencyID)
		})
	}
}

func TestCurrencyUseCase_GetBaseCurrency_NotSet(t *testing.T) {
	uc := usecase.NewCurrencyUseCase(mocks.NewMockCurrencyRepository(), mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())

	_, err := uc.GetBaseCurrency(context.Background(), &domain.User{ID: "user-1"})
	require.ErrorIs(t, err, domain.ErrBaseCurrencyNotSet)
}

func TestCurrencyUseCase_DeleteCurrency(t *testing.T) {
	ctx := context.Background()
	ownerID := "user-1"

	repo := mocks.NewMockCurrencyRepository()
	require.NoError(t, repo.Create(ctx, &domain.Currency{ID: "cur-1", Code: "ABC", IsCustom: true, UserID: &ownerID, Rate: dec("1")}))

	uc := usecase.NewCurrencyUseCase(repo, mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())

	require.NoError(t, uc.DeleteCurrency(ctx, &domain.User{ID: ownerID}, "cur-1"))

	err := uc.DeleteCurrency(ctx, &domain.User{ID: ownerID}, "cur-1")
	require.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}
