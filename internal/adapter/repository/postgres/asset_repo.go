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

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

const assetColumns = `id, user_id, currency_id, title, balance, created_at, updated_at`

// Create inserts a new asset.
func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, user_id, currency_id, title, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.UserID,
		asset.CurrencyID,
		asset.Title,
		decimalToNumeric(asset.Balance),
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.ErrCurrencyNotFound
	}

	return err
}

// GetByID retrieves an asset by ID.
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`

	asset, err := scanAsset(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssetNotFound
	}

	return asset, err
}

// GetByIDForUpdate retrieves an asset by ID with a FOR UPDATE lock.
func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Asset, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`

	asset, err := scanAsset(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssetNotFound
	}

	return asset, err
}

// GetByIDsForUpdate retrieves multiple assets with FOR UPDATE locks. Rows
// are locked in id order, callers pass ids pre-sorted.
func (r *AssetRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Asset, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// UpdateBalance updates the balance of an asset inside a transaction.
func (r *AssetRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE assets SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)

	return err
}

// Update updates an asset's mutable fields.
func (r *AssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET title = $2, currency_id = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.Title,
		asset.CurrencyID,
		asset.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCurrencyNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

// ListByUser lists the user's assets.
func (r *AssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// DeleteByID deletes the user's asset and returns the deleted id, or empty
// when nothing matched.
func (r *AssetRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	query := `DELETE FROM assets WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	if isForeignKeyViolation(err) {
		return "", domain.ErrAssetCantBeDeleted
	}

	return deleted, err
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var (
		asset   domain.Asset
		balance pgtype.Numeric
	)

	err := row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.CurrencyID,
		&asset.Title,
		&balance,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.Balance = numericToDecimal(balance)

	return &asset, nil
}
