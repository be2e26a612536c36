package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finances/internal/domain"
)

// CurrencyRepository implements usecase.CurrencyRepository.
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

// Create inserts a new currency.
func (r *CurrencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	query := `
		INSERT INTO currencies (id, code, name, rate, is_custom, rate_stable, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		currency.ID,
		currency.Code,
		currency.Name,
		decimalToNumeric(currency.Rate),
		currency.IsCustom,
		currency.RateStable,
		currency.UserID,
		currency.CreatedAt,
		currency.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrCurrencyExists
	}

	return err
}

// GetByID retrieves a currency by ID.
func (r *CurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	query := `
		SELECT id, code, name, rate, is_custom, rate_stable, user_id, created_at, updated_at
		FROM currencies
		WHERE id = $1
	`

	currency, err := scanCurrency(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCurrencyNotFound
	}

	return currency, err
}

// List lists currencies matching the filter. Defaults come first, then the
// user's custom currencies, each group ordered by code.
func (r *CurrencyRepository) List(ctx context.Context, filter domain.CurrencyFilter) ([]*domain.Currency, error) {
	query := `
		SELECT id, code, name, rate, is_custom, rate_stable, user_id, created_at, updated_at
		FROM currencies
		WHERE ((NOT is_custom AND $1) OR ($2::text IS NOT NULL AND user_id = $2))
		  AND ($3 = '' OR code = $3)
		ORDER BY is_custom, code
	`

	rows, err := r.pool.Query(ctx, query, filter.IncludeDefaults, filter.UserID, filter.Code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []*domain.Currency
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}

	return currencies, rows.Err()
}

// Update updates a currency.
func (r *CurrencyRepository) Update(ctx context.Context, currency *domain.Currency) error {
	query := `
		UPDATE currencies
		SET name = $2, rate = $3, rate_stable = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		currency.ID,
		currency.Name,
		decimalToNumeric(currency.Rate),
		currency.RateStable,
		currency.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCurrencyNotFound
	}

	return nil
}

// DeleteByID deletes the user's custom currency and returns the deleted id,
// or empty when nothing matched.
func (r *CurrencyRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	query := `
		DELETE FROM currencies
		WHERE id = $1 AND user_id = $2 AND is_custom
		RETURNING id
	`

	var deleted string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	if isForeignKeyViolation(err) {
		return "", domain.ErrCurrencyInUse
	}

	return deleted, err
}

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var (
		currency domain.Currency
		rate     pgtype.Numeric
	)

	err := row.Scan(
		&currency.ID,
		&currency.Code,
		&currency.Name,
		&rate,
		&currency.IsCustom,
		&currency.RateStable,
		&currency.UserID,
		&currency.CreatedAt,
		&currency.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	currency.Rate = numericToDecimal(rate)

	return &currency, nil
}
