package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finances/internal/domain"
)

// UserRepository implements user persistence.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, hashed_password, base_currency_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.HashedPassword,
		user.BaseCurrencyID,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}

	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, hashed_password, base_currency_id, active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, hashed_password, base_currency_id, active, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// Update updates a user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, hashed_password = $3, base_currency_id = $4, active = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.HashedPassword,
		user.BaseCurrencyID,
		user.Active,
		user.UpdatedAt,
	)

	return err
}

// SetBaseCurrency assigns the user's base currency.
func (r *UserRepository) SetBaseCurrency(ctx context.Context, userID, currencyID string) error {
	query := `
		UPDATE users
		SET base_currency_id = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, userID, currencyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCurrencyNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// GetBaseCurrency returns the user's base currency, or nil when none is
// set.
func (r *UserRepository) GetBaseCurrency(ctx context.Context, userID string) (*domain.Currency, error) {
	query := `
		SELECT c.id, c.code, c.name, c.rate, c.is_custom, c.rate_stable, c.user_id, c.created_at, c.updated_at
		FROM users u
		JOIN currencies c ON c.id = u.base_currency_id
		WHERE u.id = $1
	`

	currency, err := scanCurrency(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBaseCurrencyNotSet
	}

	return currency, err
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.HashedPassword,
		&user.BaseCurrencyID,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}
