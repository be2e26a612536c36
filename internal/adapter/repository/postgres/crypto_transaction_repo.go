package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// CryptoTransactionRepository implements usecase.CryptoTransactionRepository.
type CryptoTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewCryptoTransactionRepository creates a new CryptoTransactionRepository.
func NewCryptoTransactionRepository(pool *pgxpool.Pool) *CryptoTransactionRepository {
	return &CryptoTransactionRepository{pool: pool}
}

const cryptoTransactionColumns = `id, user_id, portfolio_id, crypto_asset_id, type, amount, price, date, created_at`

// Create inserts a new crypto transaction inside a database transaction.
func (r *CryptoTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.CryptoTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO crypto_transactions (id, user_id, portfolio_id, crypto_asset_id, type, amount, price, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.PortfolioID,
		transaction.CryptoAssetID,
		transaction.Type,
		decimalToNumeric(transaction.Amount),
		decimalToNumeric(transaction.Price),
		transaction.Date,
		transaction.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.ErrCryptoAssetNotFound
	}

	return err
}

// GetByID retrieves a crypto transaction by ID.
func (r *CryptoTransactionRepository) GetByID(ctx context.Context, id string) (*domain.CryptoTransaction, error) {
	query := `SELECT ` + cryptoTransactionColumns + ` FROM crypto_transactions WHERE id = $1`

	transaction, err := scanCryptoTransaction(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCryptoTransactionNotFound
	}

	return transaction, err
}

// ListByPortfolio lists the crypto transactions of a portfolio, newest
// first.
func (r *CryptoTransactionRepository) ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoTransaction, error) {
	query := `
		SELECT ` + cryptoTransactionColumns + `
		FROM crypto_transactions
		WHERE portfolio_id = $1 AND user_id = $2
		ORDER BY date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, portfolioID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.CryptoTransaction
	for rows.Next() {
		transaction, err := scanCryptoTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// DeleteByID deletes the user's crypto transaction inside a database
// transaction and returns the deleted id, or empty when nothing matched.
func (r *CryptoTransactionRepository) DeleteByID(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `DELETE FROM crypto_transactions WHERE id = $1 AND user_id = $2 RETURNING id`

	var deleted string
	err := pgxTx.QueryRow(ctx, query, id, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}

	return deleted, err
}

func scanCryptoTransaction(row pgx.Row) (*domain.CryptoTransaction, error) {
	var (
		transaction domain.CryptoTransaction
		amount      pgtype.Numeric
		price       pgtype.Numeric
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.PortfolioID,
		&transaction.CryptoAssetID,
		&transaction.Type,
		&amount,
		&price,
		&transaction.Date,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount = numericToDecimal(amount)
	transaction.Price = numericToDecimal(price)

	return &transaction, nil
}
