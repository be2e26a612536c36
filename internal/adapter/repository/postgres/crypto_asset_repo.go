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
	"github.com/iho/finances/internal/usecase"
)

// CryptoAssetRepository implements usecase.CryptoAssetRepository.
type CryptoAssetRepository struct {
	pool *pgxpool.Pool
}

// NewCryptoAssetRepository creates a new CryptoAssetRepository.
func NewCryptoAssetRepository(pool *pgxpool.Pool) *CryptoAssetRepository {
	return &CryptoAssetRepository{pool: pool}
}

const cryptoAssetColumns = `id, portfolio_id, user_id, crypto_currency_id, amount, created_at, updated_at`

// Create inserts a new crypto asset.
func (r *CryptoAssetRepository) Create(ctx context.Context, asset *domain.CryptoAsset) error {
	query := `
		INSERT INTO crypto_assets (id, portfolio_id, user_id, crypto_currency_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.PortfolioID,
		asset.UserID,
		asset.CryptoCurrencyID,
		decimalToNumeric(asset.Amount),
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.ErrPortfolioNotFound
	}
	if isUniqueViolation(err) {
		return domain.ErrCryptoAssetExists
	}

	return err
}

// GetByID retrieves a crypto asset by ID.
func (r *CryptoAssetRepository) GetByID(ctx context.Context, id string) (*domain.CryptoAsset, error) {
	query := `SELECT ` + cryptoAssetColumns + ` FROM crypto_assets WHERE id = $1`

	asset, err := scanCryptoAsset(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCryptoAssetNotFound
	}

	return asset, err
}

// GetByIDForUpdate retrieves a crypto asset by ID with a FOR UPDATE lock.
func (r *CryptoAssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CryptoAsset, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + cryptoAssetColumns + ` FROM crypto_assets WHERE id = $1 FOR UPDATE`

	asset, err := scanCryptoAsset(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCryptoAssetNotFound
	}

	return asset, err
}

// UpdateAmount updates the holding amount inside a transaction.
func (r *CryptoAssetRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE crypto_assets SET amount = $2, updated_at = $3 WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(amount), updatedAt)

	return err
}

// ListByPortfolio lists the crypto assets of a portfolio.
func (r *CryptoAssetRepository) ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoAsset, error) {
	query := `
		SELECT ` + cryptoAssetColumns + `
		FROM crypto_assets
		WHERE portfolio_id = $1 AND user_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, portfolioID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.CryptoAsset
	for rows.Next() {
		asset, err := scanCryptoAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// DeleteByID deletes the user's crypto asset and returns the deleted id,
// or empty when nothing matched.
func (r *CryptoAssetRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	query := `DELETE FROM crypto_assets WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return deleted, err
}

func scanCryptoAsset(row pgx.Row) (*domain.CryptoAsset, error) {
	var (
		asset  domain.CryptoAsset
		amount pgtype.Numeric
	)

	err := row.Scan(
		&asset.ID,
		&asset.PortfolioID,
		&asset.UserID,
		&asset.CryptoCurrencyID,
		&amount,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.Amount = numericToDecimal(amount)

	return &asset, nil
}
