package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	postgresRepo "github.com/iho/finances/internal/adapter/repository/postgres"
	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/config"
	"github.com/iho/finances/internal/infrastructure/postgres"
	"github.com/iho/finances/internal/usecase"
)

var migrationsPath string

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "finances-cli",
		Short: "Finances administration tool",
		Long:  `A command line interface for managing the finances backend.`,
	}

	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "migrations", "Path to database migrations")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	createUserCmd := &cobra.Command{
		Use:   "create-user <email> <name> <password>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				userUC := usecase.NewUserUseCase(postgresRepo.NewUserRepository(pool))

				user, err := userUC.Register(ctx, usecase.RegisterInput{
					Email:    args[0],
					Name:     args[1],
					Password: args[2],
				})
				if err != nil {
					return err
				}

				fmt.Printf("created user %s (%s)\n", user.ID, user.Email)
				return nil
			})
		},
	}
	rootCmd.AddCommand(createUserCmd)

	seedCurrenciesCmd := &cobra.Command{
		Use:   "seed-currencies",
		Short: "Create the default currency set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
				return seedCurrencies(ctx, postgresRepo.NewCurrencyRepository(pool))
			})
		},
	}
	rootCmd.AddCommand(seedCurrenciesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withPool runs fn with a short-lived database connection pool.
func withPool(fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 1)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool)
}

// defaultCurrencies is the system currency set seeded once. Rates are
// relative to the common base unit (USD = 1).
var defaultCurrencies = []struct {
	Code string
	Name string
	Rate string
}{
	{"USD", "US Dollar", "1"},
	{"EUR", "Euro", "1.08"},
	{"GBP", "British Pound", "1.27"},
	{"UAH", "Ukrainian Hryvnia", "0.024"},
	{"JPY", "Japanese Yen", "0.0067"},
	{"CHF", "Swiss Franc", "1.13"},
	{"PLN", "Polish Zloty", "0.25"},
}

func seedCurrencies(ctx context.Context, repo *postgresRepo.CurrencyRepository) error {
	idGen := postgresRepo.NewULIDGenerator()
	now := time.Now().UTC()

	for _, c := range defaultCurrencies {
		rate, err := decimal.NewFromString(c.Rate)
		if err != nil {
			return err
		}

		err = repo.Create(ctx, &domain.Currency{
			ID:        idGen.Generate(),
			Code:      c.Code,
			Name:      c.Name,
			Rate:      rate,
			IsCustom:  false,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrCurrencyExists) {
				fmt.Printf("currency %s already exists, skipping\n", c.Code)
				continue
			}
			return err
		}

		fmt.Printf("created currency %s\n", c.Code)
	}

	return nil
}
