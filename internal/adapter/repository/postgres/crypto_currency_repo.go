package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

// CryptoCurrencyRepository implements usecase.CryptoCurrencyRepository.
type CryptoCurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewCryptoCurrencyRepository creates a new CryptoCurrencyRepository.
func NewCryptoCurrencyRepository(pool *pgxpool.Pool) *CryptoCurrencyRepository {
	return &CryptoCurrencyRepository{pool: pool}
}

const cryptoCurrencyColumns = `id, code, name, price, created_at, updated_at`

// Create inserts a new crypto currency.
func (r *CryptoCurrencyRepository) Create(ctx context.Context, currency *domain.CryptoCurrency) error {
	query := `
		INSERT INTO crypto_currencies (id, code, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		currency.ID,
		currency.Code,
		currency.Name,
		decimalToNumeric(currency.Price),
		currency.CreatedAt,
		currency.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrCryptoCurrencyExists
	}

	return err
}

// GetByID retrieves a crypto currency by ID.
func (r *CryptoCurrencyRepository) GetByID(ctx context.Context, id string) (*domain.CryptoCurrency, error) {
	query := `SELECT ` + cryptoCurrencyColumns + ` FROM crypto_currencies WHERE id = $1`

	currency, err := scanCryptoCurrency(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCryptoCurrencyNotFound
	}

	return currency, err
}

// GetByCode retrieves a crypto currency by code.
func (r *CryptoCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.CryptoCurrency, error) {
	query := `SELECT ` + cryptoCurrencyColumns + ` FROM crypto_currencies WHERE code = $1`

	currency, err := scanCryptoCurrency(r.pool.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCryptoCurrencyNotFound
	}

	return currency, err
}

// List lists all crypto currencies ordered by code.
func (r *CryptoCurrencyRepository) List(ctx context.Context) ([]*domain.CryptoCurrency, error) {
	query := `SELECT ` + cryptoCurrencyColumns + ` FROM crypto_currencies ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []*domain.CryptoCurrency
	for rows.Next() {
		currency, err := scanCryptoCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}

	return currencies, rows.Err()
}

// UpdatePrice stores a fresh quote for the currency.
func (r *CryptoCurrencyRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE crypto_currencies SET price = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, decimalToNumeric(price), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCryptoCurrencyNotFound
	}

	return nil
}

func scanCryptoCurrency(row pgx.Row) (*domain.CryptoCurrency, error) {
	var (
		currency domain.CryptoCurrency
		price    pgtype.Numeric
	)

	err := row.Scan(
		&currency.ID,
		&currency.Code,
		&currency.Name,
		&price,
		&currency.CreatedAt,
		&currency.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	currency.Price = numericToDecimal(price)

	return &currency, nil
}
