package usecase

import (
	"context"
	"time"

	"github.com/iho/finances/internal/domain"
)

// CategoryUseCase handles transaction category business logic.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// AddCategoryInput represents input for creating a category.
type AddCategoryInput struct {
	Title string
	Kind  domain.TransactionType // optional; empty means any type
}

// AddCategory creates a category for the user.
func (uc *CategoryUseCase) AddCategory(ctx context.Context, user *domain.User, input AddCategoryInput) (*domain.TransactionCategory, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	if input.Kind != "" && !input.Kind.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	now := time.Now().UTC()
	category := &domain.TransactionCategory{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		Title:     input.Title,
		Kind:      input.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ChangeCategoryInput is a partial patch for a category.
type ChangeCategoryInput struct {
	ID    string
	Title *string
	Kind  *domain.TransactionType
}

// ChangeCategory applies a validated patch to the user's category.
func (uc *CategoryUseCase) ChangeCategory(ctx context.Context, user *domain.User, input ChangeCategoryInput) (*domain.TransactionCategory, error) {
	category, err := uc.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if category.UserID != user.ID {
		return nil, domain.ErrCategoryNotFound
	}

	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return nil, err
		}

		category.Title = *input.Title
	}

	if input.Kind != nil {
		if *input.Kind != "" && !input.Kind.IsValid() {
			return nil, domain.ErrInvalidTransactionType
		}

		category.Kind = *input.Kind
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves the user's category by ID. Soft-deleted
// categories are reported as not found.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, user *domain.User, id string) (*domain.TransactionCategory, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.UserID != user.ID {
		return nil, domain.ErrCategoryNotFound
	}

	return category, nil
}

// ListCategories lists the user's categories, excluding soft-deleted
// ones, optionally filtered by kind.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, user *domain.User, kind *domain.TransactionType) ([]*domain.TransactionCategory, error) {
	if kind != nil && !kind.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	return uc.categoryRepo.List(ctx, user.ID, kind)
}

// DeleteCategory soft-deletes the user's category. The id stays valid for
// historical transactions; the category just disappears from listings and
// cannot be attached to new transactions.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, user *domain.User, id string) error {
	deleted, err := uc.categoryRepo.SoftDeleteByID(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if deleted == "" {
		return domain.ErrCategoryNotFound
	}

	return nil
}
