package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finances/internal/domain"
)

// CryptoPortfolioRepository implements usecase.CryptoPortfolioRepository.
type CryptoPortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewCryptoPortfolioRepository creates a new CryptoPortfolioRepository.
func NewCryptoPortfolioRepository(pool *pgxpool.Pool) *CryptoPortfolioRepository {
	return &CryptoPortfolioRepository{pool: pool}
}

// Create inserts a new portfolio.
func (r *CryptoPortfolioRepository) Create(ctx context.Context, portfolio *domain.CryptoPortfolio) error {
	query := `
		INSERT INTO crypto_portfolios (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Title,
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrPortfolioExists
	}

	return err
}

// GetByID retrieves a portfolio by ID.
func (r *CryptoPortfolioRepository) GetByID(ctx context.Context, id string) (*domain.CryptoPortfolio, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM crypto_portfolios
		WHERE id = $1
	`

	var portfolio domain.CryptoPortfolio
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.Title,
		&portfolio.CreatedAt,
		&portfolio.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPortfolioNotFound
	}

	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

// ListByUser lists the user's portfolios.
func (r *CryptoPortfolioRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CryptoPortfolio, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM crypto_portfolios
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []*domain.CryptoPortfolio
	for rows.Next() {
		var portfolio domain.CryptoPortfolio
		err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.Title,
			&portfolio.CreatedAt,
			&portfolio.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, &portfolio)
	}

	return portfolios, rows.Err()
}

// Update updates a portfolio.
func (r *CryptoPortfolioRepository) Update(ctx context.Context, portfolio *domain.CryptoPortfolio) error {
	query := `
		UPDATE crypto_portfolios
		SET title = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, portfolio.ID, portfolio.Title, portfolio.UpdatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPortfolioNotFound
	}

	return nil
}

// DeleteByID deletes the user's portfolio and returns the deleted id, or
// empty when nothing matched.
func (r *CryptoPortfolioRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	query := `DELETE FROM crypto_portfolios WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return deleted, err
}
