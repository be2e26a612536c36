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

func TestCategoryUseCase_AddCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.AddCategoryInput
		wantErr error
	}{
		{
			name:  "category bound to a type",
			input: usecase.AddCategoryInput{Title: "salary", Kind: domain.TransactionTypeIncome},
		},
		{
			name:  "category without a type",
			input: usecase.AddCategoryInput{Title: "misc"},
		},
		{
			name:    "empty title",
			input:   usecase.AddCategoryInput{Title: ""},
			wantErr: domain.ErrInvalidTitle,
		},
		{
			name:    "unknown kind",
			input:   usecase.AddCategoryInput{Title: "weird", Kind: domain.TransactionType("loan")},
			wantErr: domain.ErrInvalidTransactionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

			category, err := uc.AddCategory(context.Background(), &domain.User{ID: "user-1"}, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Title, category.Title)
			assert.Equal(t, tt.input.Kind, category.Kind)
		})
	}
}

func TestCategoryUseCase_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	repo := mocks.NewMockCategoryRepository()
	uc := usecase.NewCategoryUseCase(repo, mocks.NewMockIDGenerator())

	category, err := uc.AddCategory(ctx, user, usecase.AddCategoryInput{Title: "food"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteCategory(ctx, user, category.ID))

	// A soft-deleted category reads as gone and disappears from listings.
	_, err = uc.GetCategory(ctx, user, category.ID)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)

	list, err := uc.ListCategories(ctx, user, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	// But its row survives for historical references.
	kept, err := repo.ListByIDs(ctx, []string{category.ID})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.True(t, kept[0].Deleted)

	err = uc.DeleteCategory(ctx, user, category.ID)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryUseCase_ListCategories_ByKind(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: "user-1"}

	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

	_, err := uc.AddCategory(ctx, user, usecase.AddCategoryInput{Title: "salary", Kind: domain.TransactionTypeIncome})
	require.NoError(t, err)
	_, err = uc.AddCategory(ctx, user, usecase.AddCategoryInput{Title: "food", Kind: domain.TransactionTypeExpense})
	require.NoError(t, err)

	kind := domain.TransactionTypeExpense
	list, err := uc.ListCategories(ctx, user, &kind)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "food", list[0].Title)
}

func TestCategoryUseCase_ChangeCategory_NotOwner(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), mocks.NewMockIDGenerator())

	category, err := uc.AddCategory(ctx, &domain.User{ID: "user-1"}, usecase.AddCategoryInput{Title: "food"})
	require.NoError(t, err)

	title := "stolen"
	_, err = uc.ChangeCategory(ctx, &domain.User{ID: "user-2"}, usecase.ChangeCategoryInput{ID: category.ID, Title: &title})
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
