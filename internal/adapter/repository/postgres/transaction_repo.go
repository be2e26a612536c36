package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, asset_id, counter_asset_id, counter_amount, category_id, type, amount, date, created_at, updated_at`

// Create inserts a new transaction inside a database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, user_id, asset_id, counter_asset_id, counter_amount, category_id, type, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := pgxTx.Exec(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.AssetID,
		transaction.CounterAssetID,
		nullableDecimal(transaction.CounterAmount),
		transaction.CategoryID,
		transaction.Type,
		decimalToNumeric(transaction.Amount),
		transaction.Date,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.ErrAssetNotFound
	}

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	transaction, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, err
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	transaction, err := scanTransaction(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, err
}

// ListByPeriod lists the user's transactions in the period, ordered by date
// then id so consumers see a stable order.
func (r *TransactionRepository) ListByPeriod(ctx context.Context, userID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		  AND date >= $2 AND date <= $3
		  AND ($4::text IS NULL OR type = $4)
		ORDER BY date, id
	`

	rows, err := r.pool.Query(ctx, query, userID, filter.Start, filter.End, filter.Type)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Update updates a transaction inside a database transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET counter_amount = $2, category_id = $3, amount = $4, date = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		transaction.ID,
		nullableDecimal(transaction.CounterAmount),
		transaction.CategoryID,
		decimalToNumeric(transaction.Amount),
		transaction.Date,
		transaction.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// DeleteByID deletes the user's transaction inside a database transaction
// and returns the deleted id, or empty when nothing matched.
func (r *TransactionRepository) DeleteByID(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := pgxTx.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return deleted, err
}

// ExistsByAsset reports whether any transaction references the asset,
// either as its owner or as a transfer counter asset.
func (r *TransactionRepository) ExistsByAsset(ctx context.Context, assetID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE asset_id = $1 OR counter_asset_id = $1
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, assetID).Scan(&exists)

	return exists, err
}

// SumEffectsByAsset computes the signed sum of all balance effects on the
// asset. Income credits, expense and outgoing transfers debit, incoming
// transfer credits use the stored converted amount.
func (r *TransactionRepository) SumEffectsByAsset(ctx context.Context, assetID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(effect), 0)
		FROM (
			SELECT CASE
				WHEN type = 'income' THEN amount
				ELSE -amount
			END AS effect
			FROM transactions
			WHERE asset_id = $1
			UNION ALL
			SELECT counter_amount
			FROM transactions
			WHERE counter_asset_id = $1 AND counter_amount IS NOT NULL
		) effects
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, assetID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction   domain.Transaction
		amount        pgtype.Numeric
		counterAmount pgtype.Numeric
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.AssetID,
		&transaction.CounterAssetID,
		&counterAmount,
		&transaction.CategoryID,
		&transaction.Type,
		&amount,
		&transaction.Date,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount = numericToDecimal(amount)
	if counterAmount.Valid {
		credit := numericToDecimal(counterAmount)
		transaction.CounterAmount = &credit
	}

	return &transaction, nil
}

func nullableDecimal(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(*d)
}
