package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction business logic. Every mutation
// adjusts the owning asset's balance inside a single database transaction
// so a cancelled request never leaves a partial write.
type TransactionUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	assetRepo       AssetRepository
	categoryRepo    CategoryRepository
	currencyRepo    CurrencyRepository
	converter       *Converter
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	assetRepo AssetRepository,
	categoryRepo CategoryRepository,
	currencyRepo CurrencyRepository,
	converter *Converter,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
		categoryRepo:    categoryRepo,
		currencyRepo:    currencyRepo,
		converter:       converter,
		idGen:           idGen,
	}
}

// WithRetrier makes balance mutations retry on deadlock and
// serialization failures.
func (uc *TransactionUseCase) WithRetrier(retrier Retrier) *TransactionUseCase {
	uc.retrier = retrier
	return uc
}

// WithMetrics instruments transaction mutations.
func (uc *TransactionUseCase) WithMetrics(m *metrics.Metrics) *TransactionUseCase {
	uc.metrics = m
	return uc
}

func (uc *TransactionUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// AddTransactionInput represents input for creating a transaction.
type AddTransactionInput struct {
	AssetID        string
	CounterAssetID *string
	CategoryID     *string
	Type           domain.TransactionType
	Amount         decimal.Decimal
	Date           time.Time
}

// AddTransaction creates a transaction and adjusts the affected asset
// balances atomically. The asset, the optional counter asset and the
// optional category must all belong to the acting user.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, user *domain.User, input AddTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	transaction := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		UserID:         user.ID,
		AssetID:        input.AssetID,
		CounterAssetID: input.CounterAssetID,
		CategoryID:     input.CategoryID,
		Type:           input.Type,
		Amount:         input.Amount,
		Date:           input.Date,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := uc.checkCategory(ctx, user, input.CategoryID); err != nil {
		return nil, err
	}

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		assets, err := uc.lockAssets(ctx, tx, user, transaction)
		if err != nil {
			return err
		}

		asset := assets[transaction.AssetID]

		if transaction.Type == domain.TransactionTypeTransfer {
			counter := assets[*transaction.CounterAssetID]

			credit, err := uc.counterCredit(ctx, asset, counter, transaction.Amount)
			if err != nil {
				return err
			}

			transaction.CounterAmount = &credit

			if err := uc.assetRepo.UpdateBalance(ctx, tx, counter.ID, counter.ApplyAmount(credit), now); err != nil {
				return err
			}
		}

		if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return err
		}

		if err := uc.assetRepo.UpdateBalance(ctx, tx, asset.ID, asset.ApplyAmount(transaction.BalanceEffect()), now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionErrors.WithLabelValues("add").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(transaction.Type)).Inc()
		uc.metrics.TransactionAmount.WithLabelValues(string(transaction.Type)).Observe(transaction.Amount.InexactFloat64())
	}

	return transaction, nil
}

// ChangeTransactionInput is a partial patch for a transaction. Type and
// asset are immutable after creation; a patch that tries to move either
// one is rejected with ErrTransactionCantBeChanged.
type ChangeTransactionInput struct {
	ID            string
	Type          *domain.TransactionType
	AssetID       *string
	Amount        *decimal.Decimal
	Date          *time.Time
	CategoryID    *string
	ClearCategory bool
}

// ChangeTransaction applies a validated patch inside one database
// transaction: the old balance effect is reverted and the new one applied,
// so the asset balance invariant holds throughout.
func (uc *TransactionUseCase) ChangeTransaction(ctx context.Context, user *domain.User, input ChangeTransactionInput) (*domain.Transaction, error) {
	if input.CategoryID != nil {
		if err := uc.checkCategory(ctx, user, input.CategoryID); err != nil {
			return nil, err
		}
	}

	var transaction *domain.Transaction

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		transaction, err = uc.transactionRepo.GetByIDForUpdate(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		if transaction.UserID != user.ID {
			return domain.ErrTransactionNotFound
		}

		if input.Type != nil && *input.Type != transaction.Type {
			return domain.ErrTransactionCantBeChanged
		}

		if input.AssetID != nil && *input.AssetID != transaction.AssetID {
			return domain.ErrTransactionCantBeChanged
		}

		oldEffect := transaction.BalanceEffect()

		oldCredit := decimal.Zero
		if transaction.CounterAmount != nil {
			oldCredit = *transaction.CounterAmount
		}

		if input.Amount != nil {
			transaction.Amount = *input.Amount
		}

		if input.Date != nil {
			transaction.Date = *input.Date
		}

		switch {
		case input.ClearCategory:
			transaction.CategoryID = nil
		case input.CategoryID != nil:
			transaction.CategoryID = input.CategoryID
		}

		if err := transaction.Validate(); err != nil {
			return err
		}

		now := time.Now().UTC()
		transaction.UpdatedAt = now

		assets, err := uc.lockAssets(ctx, tx, user, transaction)
		if err != nil {
			return err
		}

		asset := assets[transaction.AssetID]

		if transaction.Type == domain.TransactionTypeTransfer {
			counter := assets[*transaction.CounterAssetID]

			credit, err := uc.counterCredit(ctx, asset, counter, transaction.Amount)
			if err != nil {
				return err
			}

			transaction.CounterAmount = &credit

			newBalance := counter.Balance.Sub(oldCredit).Add(credit)
			if err := uc.assetRepo.UpdateBalance(ctx, tx, counter.ID, newBalance, now); err != nil {
				return err
			}
		}

		if err := uc.transactionRepo.Update(ctx, tx, transaction); err != nil {
			return err
		}

		newBalance := asset.Balance.Sub(oldEffect).Add(transaction.BalanceEffect())
		if err := uc.assetRepo.UpdateBalance(ctx, tx, asset.ID, newBalance, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionErrors.WithLabelValues("change").Inc()
		}
		return nil, err
	}

	return transaction, nil
}

// GetTransaction retrieves the user's transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, user *domain.User, id string) (*domain.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if transaction.UserID != user.ID {
		return nil, domain.ErrTransactionNotFound
	}

	return transaction, nil
}

// ListTransactions lists the user's transactions in a period.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, user *domain.User, filter TransactionFilter) ([]*domain.Transaction, error) {
	if err := domain.ValidatePeriod(filter.Start, filter.End); err != nil {
		return nil, err
	}

	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	return uc.transactionRepo.ListByPeriod(ctx, user.ID, filter)
}

// DeleteTransaction deletes a transaction and reverts its balance effect
// atomically.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, user *domain.User, id string) error {
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		transaction, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if transaction.UserID != user.ID {
			return domain.ErrTransactionNotFound
		}

		now := time.Now().UTC()

		assets, err := uc.lockAssets(ctx, tx, user, transaction)
		if err != nil {
			return err
		}

		asset := assets[transaction.AssetID]

		if transaction.CounterAssetID != nil && transaction.CounterAmount != nil {
			counter := assets[*transaction.CounterAssetID]

			newBalance := counter.Balance.Sub(*transaction.CounterAmount)
			if err := uc.assetRepo.UpdateBalance(ctx, tx, counter.ID, newBalance, now); err != nil {
				return err
			}
		}

		deleted, err := uc.transactionRepo.DeleteByID(ctx, tx, transaction.ID, user.ID)
		if err != nil {
			return err
		}

		if deleted == "" {
			return domain.ErrTransactionNotFound
		}

		newBalance := asset.Balance.Sub(transaction.BalanceEffect())
		if err := uc.assetRepo.UpdateBalance(ctx, tx, asset.ID, newBalance, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionErrors.WithLabelValues("delete").Inc()
		}
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// lockAssets locks the transaction's assets FOR UPDATE in sorted ID order
// to prevent deadlocks, and checks they belong to the user.
func (uc *TransactionUseCase) lockAssets(ctx context.Context, tx Transaction, user *domain.User, t *domain.Transaction) (map[string]*domain.Asset, error) {
	ids := []string{t.AssetID}
	if t.CounterAssetID != nil {
		ids = append(ids, *t.CounterAssetID)
	}

	sort.Strings(ids)

	assets, err := uc.assetRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(assets) != len(ids) {
		return nil, domain.ErrAssetNotFound
	}

	byID := make(map[string]*domain.Asset, len(assets))
	for _, a := range assets {
		if a.UserID != user.ID {
			return nil, domain.ErrAssetNotFound
		}

		byID[a.ID] = a
	}

	return byID, nil
}

// counterCredit converts a transfer amount into the counter asset's
// currency. Same-currency transfers credit the amount unchanged.
func (uc *TransactionUseCase) counterCredit(ctx context.Context, from, to *domain.Asset, amount decimal.Decimal) (decimal.Decimal, error) {
	if from.CurrencyID == to.CurrencyID {
		return amount, nil
	}

	fromCurrency, err := uc.currencyRepo.GetByID(ctx, from.CurrencyID)
	if err != nil {
		return decimal.Zero, err
	}

	toCurrency, err := uc.currencyRepo.GetByID(ctx, to.CurrencyID)
	if err != nil {
		return decimal.Zero, err
	}

	credit, err := uc.converter.Convert(ctx, amount, fromCurrency, toCurrency)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ConversionErrors.Inc()
		}
		return decimal.Zero, err
	}

	return credit, nil
}

// checkCategory verifies that the referenced category exists, belongs to
// the user and is not soft-deleted.
func (uc *TransactionUseCase) checkCategory(ctx context.Context, user *domain.User, categoryID *string) error {
	if categoryID == nil {
		return nil
	}

	category, err := uc.categoryRepo.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}

	if category.UserID != user.ID {
		return domain.ErrCategoryNotFound
	}

	return nil
}
