package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/infrastructure/metrics"
)

// ReportUseCase computes cross-currency aggregates over a user's
// transactions. It issues the queries for the candidate set up front and
// performs conversion and summation purely in process.
type ReportUseCase struct {
	transactionRepo TransactionRepository
	assetRepo       AssetRepository
	currencyRepo    CurrencyRepository
	categoryRepo    CategoryRepository
	converter       *Converter
	metrics         *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	transactionRepo TransactionRepository,
	assetRepo AssetRepository,
	currencyRepo CurrencyRepository,
	categoryRepo CategoryRepository,
	converter *Converter,
) *ReportUseCase {
	return &ReportUseCase{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
		currencyRepo:    currencyRepo,
		categoryRepo:    categoryRepo,
		converter:       converter,
	}
}

// WithMetrics instruments report computations.
func (uc *ReportUseCase) WithMetrics(m *metrics.Metrics) *ReportUseCase {
	uc.metrics = m
	return uc
}

// PeriodInput bounds an aggregation request.
type PeriodInput struct {
	Start time.Time
	End   time.Time
	Type  *domain.TransactionType
}

// TotalByCategory is one aggregation group. CategoryID is nil for the
// uncategorized bucket.
type TotalByCategory struct {
	CategoryID   *string
	CategoryName string
	Total        decimal.Decimal
}

// TotalByPeriod sums the user's transactions in the period, each converted
// to the user's base currency. Income counts positive, expense negative;
// transfers between the user's own assets contribute zero. An empty period
// yields zero. The user must have a base currency set.
func (uc *ReportUseCase) TotalByPeriod(ctx context.Context, user *domain.User, input PeriodInput) (decimal.Decimal, error) {
	start := time.Now()

	env, err := uc.loadPeriod(ctx, user, input)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range env.transactions {
		converted, err := uc.convertSigned(ctx, env, t)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(converted)
	}

	uc.observe("total", start)

	return RoundForDisplay(total, env.base.Code), nil
}

// TotalCategoriesByPeriod groups the same aggregate by category. Groups
// appear in the order categories are first encountered while scanning the
// period's transactions (ordered by date then id), so the result is
// deterministic. Transactions without a category fall into a single
// uncategorized bucket.
func (uc *ReportUseCase) TotalCategoriesByPeriod(ctx context.Context, user *domain.User, input PeriodInput) ([]TotalByCategory, error) {
	start := time.Now()

	env, err := uc.loadPeriod(ctx, user, input)
	if err != nil {
		return nil, err
	}

	var order []string

	totals := make(map[string]decimal.Decimal)
	for _, t := range env.transactions {
		converted, err := uc.convertSigned(ctx, env, t)
		if err != nil {
			return nil, err
		}

		key := ""
		if t.CategoryID != nil {
			key = *t.CategoryID
		}

		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}

		totals[key] = totals[key].Add(converted)
	}

	names, err := uc.categoryNames(ctx, order)
	if err != nil {
		return nil, err
	}

	groups := make([]TotalByCategory, 0, len(order))
	for _, key := range order {
		group := TotalByCategory{
			CategoryName: domain.UncategorizedTitle,
			Total:        RoundForDisplay(totals[key], env.base.Code),
		}

		if key != "" {
			id := key
			group.CategoryID = &id
			group.CategoryName = names[key]
		}

		groups = append(groups, group)
	}

	uc.observe("categories", start)

	return groups, nil
}

func (uc *ReportUseCase) observe(kind string, start time.Time) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.ReportRequests.WithLabelValues(kind).Inc()
	uc.metrics.ReportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// periodEnv holds everything an aggregation loop needs, prefetched so the
// loop itself never touches the store.
type periodEnv struct {
	transactions []*domain.Transaction
	assets       map[string]*domain.Asset
	currencies   map[string]*domain.Currency
	base         *domain.Currency
}

func (uc *ReportUseCase) loadPeriod(ctx context.Context, user *domain.User, input PeriodInput) (*periodEnv, error) {
	if !user.HasBaseCurrency() {
		return nil, domain.ErrBaseCurrencyNotSet
	}

	if err := domain.ValidatePeriod(input.Start, input.End); err != nil {
		return nil, err
	}

	if input.Type != nil && !input.Type.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}

	base, err := uc.currencyRepo.GetByID(ctx, *user.BaseCurrencyID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.ListByPeriod(ctx, user.ID, TransactionFilter{
		Start: input.Start,
		End:   input.End,
		Type:  input.Type,
	})
	if err != nil {
		return nil, err
	}

	assets, err := uc.assetRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	assetMap := make(map[string]*domain.Asset, len(assets))
	for _, a := range assets {
		assetMap[a.ID] = a
	}

	currencies, err := uc.currencyRepo.List(ctx, domain.CurrencyFilter{
		UserID:          &user.ID,
		IncludeDefaults: true,
	})
	if err != nil {
		return nil, err
	}

	currencyMap := make(map[string]*domain.Currency, len(currencies))
	for _, c := range currencies {
		currencyMap[c.ID] = c
	}

	return &periodEnv{
		transactions: transactions,
		assets:       assetMap,
		currencies:   currencyMap,
		base:         base,
	}, nil
}

func (uc *ReportUseCase) convertSigned(ctx context.Context, env *periodEnv, t *domain.Transaction) (decimal.Decimal, error) {
	signed := t.SignedAmount()
	if signed.IsZero() {
		return decimal.Zero, nil
	}

	asset, ok := env.assets[t.AssetID]
	if !ok {
		return decimal.Zero, domain.ErrAssetNotFound
	}

	currency, ok := env.currencies[asset.CurrencyID]
	if !ok {
		return decimal.Zero, domain.ErrCurrencyNotFound
	}

	converted, err := uc.converter.Convert(ctx, signed, currency, env.base)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ConversionErrors.Inc()
		}
		return decimal.Zero, err
	}

	return converted, nil
}

func (uc *ReportUseCase) categoryNames(ctx context.Context, keys []string) (map[string]string, error) {
	var ids []string
	for _, key := range keys {
		if key != "" {
			ids = append(ids, key)
		}
	}

	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	categories, err := uc.categoryRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Title
	}

	return names, nil
}
