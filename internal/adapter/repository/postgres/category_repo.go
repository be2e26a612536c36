package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finances/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, user_id, title, kind, deleted, created_at, updated_at`

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.TransactionCategory) error {
	query := `
		INSERT INTO transaction_categories (id, user_id, title, kind, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.UserID,
		category.Title,
		category.Kind,
		category.Deleted,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}

	return err
}

// GetByID retrieves a category by ID. Soft-deleted categories read as not
// found.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.TransactionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM transaction_categories WHERE id = $1 AND NOT deleted`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}

	return category, err
}

// ListByIDs retrieves categories by id, including soft-deleted ones, so
// historical references still resolve to a title.
func (r *CategoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.TransactionCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM transaction_categories WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// List lists the user's live categories, optionally filtered by kind.
func (r *CategoryRepository) List(ctx context.Context, userID string, kind *domain.TransactionType) ([]*domain.TransactionCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM transaction_categories
		WHERE user_id = $1 AND NOT deleted
		  AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// Update updates a category.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.TransactionCategory) error {
	query := `
		UPDATE transaction_categories
		SET title = $2, kind = $3, updated_at = $4
		WHERE id = $1 AND NOT deleted
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Title,
		category.Kind,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryExists
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// SoftDeleteByID marks the user's category deleted and returns its id, or
// empty when nothing matched. The row stays for historical transactions.
func (r *CategoryRepository) SoftDeleteByID(ctx context.Context, id, userID string) (string, error) {
	query := `
		UPDATE transaction_categories
		SET deleted = TRUE, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND NOT deleted
		RETURNING id
	`

	var deleted string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return deleted, err
}

func scanCategory(row pgx.Row) (*domain.TransactionCategory, error) {
	var category domain.TransactionCategory
	err := row.Scan(
		&category.ID,
		&category.UserID,
		&category.Title,
		&category.Kind,
		&category.Deleted,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func collectCategories(rows pgx.Rows) ([]*domain.TransactionCategory, error) {
	var categories []*domain.TransactionCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
