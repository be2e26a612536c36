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

func TestUserUseCase_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{
			name:  "valid registration",
			input: usecase.RegisterInput{Email: "jo@example.com", Name: "Jo", Password: "Sup3rSecret"},
		},
		{
			name:    "invalid email",
			input:   usecase.RegisterInput{Email: "not-an-email", Password: "Sup3rSecret"},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name:    "weak password",
			input:   usecase.RegisterInput{Email: "jo@example.com", Password: "short"},
			wantErr: domain.ErrPasswordTooWeak,
		},
		{
			name:    "password without digits",
			input:   usecase.RegisterInput{Email: "jo@example.com", Password: "NoDigitsHere"},
			wantErr: domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewUserUseCase(mocks.NewMockUserRepository())

			user, err := uc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.Empty(t, user.HashedPassword)
			assert.True(t, user.Active)
		})
	}
}

func TestUserUseCase_Register_DuplicateEmail(t *testing.T) {
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository())

	input := usecase.RegisterInput{Email: "jo@example.com", Password: "Sup3rSecret"}

	_, err := uc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Register(ctx, usecase.RegisterInput{Email: "jo@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   usecase.AuthenticateInput
		wantErr error
	}{
		{
			name:  "correct credentials",
			input: usecase.AuthenticateInput{Email: "jo@example.com", Password: "Sup3rSecret"},
		},
		{
			name:    "wrong password",
			input:   usecase.AuthenticateInput{Email: "jo@example.com", Password: "Wr0ngPassword"},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "unknown email",
			input:   usecase.AuthenticateInput{Email: "nobody@example.com", Password: "Sup3rSecret"},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := uc.Authenticate(ctx, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.Empty(t, user.HashedPassword)
		})
	}
}

func TestUserUseCase_Authenticate_InactiveUser(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(repo)

	registered, err := uc.Register(ctx, usecase.RegisterInput{Email: "jo@example.com", Password: "Sup3rSecret"})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	stored.Active = false

	_, err = uc.Authenticate(ctx, usecase.AuthenticateInput{Email: "jo@example.com", Password: "Sup3rSecret"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
