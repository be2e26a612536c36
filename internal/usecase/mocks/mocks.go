package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
	"github.com/iho/finances/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc          func(ctx context.Context, user *domain.User) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc          func(ctx context.Context, user *domain.User) error
	SetBaseCurrencyFunc func(ctx context.Context, userID, currencyID string) error
	GetBaseCurrencyFunc func(ctx context.Context, userID string) (*domain.Currency, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) SetBaseCurrency(ctx context.Context, userID, currencyID string) error {
	if m.SetBaseCurrencyFunc != nil {
		return m.SetBaseCurrencyFunc(ctx, userID, currencyID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.BaseCurrencyID = &currencyID
	return nil
}

func (m *MockUserRepository) GetBaseCurrency(ctx context.Context, userID string) (*domain.Currency, error) {
	if m.GetBaseCurrencyFunc != nil {
		return m.GetBaseCurrencyFunc(ctx, userID)
	}
	return nil, domain.ErrBaseCurrencyNotSet
}

// MockCurrencyRepository is a mock implementation of CurrencyRepository.
type MockCurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]*domain.Currency
	order      []string

	CreateFunc     func(ctx context.Context, currency *domain.Currency) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Currency, error)
	ListFunc       func(ctx context.Context, filter domain.CurrencyFilter) ([]*domain.Currency, error)
	UpdateFunc     func(ctx context.Context, currency *domain.Currency) error
	DeleteByIDFunc func(ctx context.Context, id, userID string) (string, error)
}

func NewMockCurrencyRepository() *MockCurrencyRepository {
	return &MockCurrencyRepository{
		currencies: make(map[string]*domain.Currency),
	}
}

func (m *MockCurrencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, currency)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.currencies {
		if c.Code == currency.Code && equalOwner(c.UserID, currency.UserID) {
			return domain.ErrCurrencyExists
		}
	}
	m.currencies[currency.ID] = currency
	m.order = append(m.order, currency.ID)
	return nil
}

func (m *MockCurrencyRepository) GetByID(ctx context.Context, id string) (*domain.Currency, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.currencies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) List(ctx context.Context, filter domain.CurrencyFilter) ([]*domain.Currency, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Currency
	for _, id := range m.order {
		c, ok := m.currencies[id]
		if !ok {
			continue
		}
		if filter.Code != "" && c.Code != filter.Code {
			continue
		}
		if c.IsCustom {
			if filter.UserID == nil || c.UserID == nil || *c.UserID != *filter.UserID {
				continue
			}
		} else if !filter.IncludeDefaults {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCurrencyRepository) Update(ctx context.Context, currency *domain.Currency) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, currency)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.currencies[currency.ID]; !ok {
		return domain.ErrCurrencyNotFound
	}
	m.currencies[currency.ID] = currency
	return nil
}

func (m *MockCurrencyRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.currencies[id]
	if !ok || c.UserID == nil || *c.UserID != userID {
		return "", nil
	}
	delete(m.currencies, id)
	return id, nil
}

// MockAssetRepository is a mock implementation of AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset
	order  []string

	CreateFunc            func(ctx context.Context, asset *domain.Asset) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Asset, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Asset, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Asset, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateFunc            func(ctx context.Context, asset *domain.Asset) error
	ListByUserFunc        func(ctx context.Context, userID string) ([]*domain.Asset, error)
	DeleteByIDFunc        func(ctx context.Context, id, userID string) (string, error)
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[string]*domain.Asset),
	}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
	m.order = append(m.order, asset.ID)
	return nil
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAssetNotFound
}

func (m *MockAssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Asset, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAssetRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Asset, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var assets []*domain.Asset
	for _, id := range ids {
		if a, ok := m.assets[id]; ok {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (m *MockAssetRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assets[id]; ok {
		a.Balance = balance
		a.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[asset.ID]; !ok {
		return domain.ErrAssetNotFound
	}
	m.assets[asset.ID] = asset
	return nil
}

func (m *MockAssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Asset
	for _, id := range m.order {
		if a, ok := m.assets[id]; ok && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAssetRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok || a.UserID != userID {
		return "", nil
	}
	delete(m.assets, id)
	return id, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	ListByPeriodFunc      func(ctx context.Context, userID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error
	DeleteByIDFunc        func(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error)
	ExistsByAssetFunc     func(ctx context.Context, assetID string) (bool, error)
	SumEffectsByAssetFunc func(ctx context.Context, assetID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	m.order = append(m.order, transaction.ID)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) ListByPeriod(ctx context.Context, userID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, userID, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, id := range m.order {
		t, ok := m.transactions[id]
		if !ok || t.UserID != userID {
			continue
		}
		if t.Date.Before(filter.Start) || t.Date.After(filter.End) {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, transaction *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) DeleteByID(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, tx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok || t.UserID != userID {
		return "", nil
	}
	delete(m.transactions, id)
	return id, nil
}

func (m *MockTransactionRepository) ExistsByAsset(ctx context.Context, assetID string) (bool, error) {
	if m.ExistsByAssetFunc != nil {
		return m.ExistsByAssetFunc(ctx, assetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.AssetID == assetID {
			return true, nil
		}
		if t.CounterAssetID != nil && *t.CounterAssetID == assetID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) SumEffectsByAsset(ctx context.Context, assetID string) (decimal.Decimal, error) {
	if m.SumEffectsByAssetFunc != nil {
		return m.SumEffectsByAssetFunc(ctx, assetID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, id := range m.order {
		t, ok := m.transactions[id]
		if !ok {
			continue
		}
		if t.AssetID == assetID {
			sum = sum.Add(t.BalanceEffect())
		}
		if t.CounterAssetID != nil && *t.CounterAssetID == assetID && t.CounterAmount != nil {
			sum = sum.Add(*t.CounterAmount)
		}
	}
	return sum, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.TransactionCategory
	order      []string

	CreateFunc         func(ctx context.Context, category *domain.TransactionCategory) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.TransactionCategory, error)
	ListByIDsFunc      func(ctx context.Context, ids []string) ([]*domain.TransactionCategory, error)
	ListFunc           func(ctx context.Context, userID string, kind *domain.TransactionType) ([]*domain.TransactionCategory, error)
	UpdateFunc         func(ctx context.Context, category *domain.TransactionCategory) error
	SoftDeleteByIDFunc func(ctx context.Context, id, userID string) (string, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.TransactionCategory),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.TransactionCategory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.UserID == category.UserID && c.Title == category.Title && !c.Deleted {
			return domain.ErrCategoryExists
		}
	}
	m.categories[category.ID] = category
	m.order = append(m.order, category.ID)
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.TransactionCategory, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && !c.Deleted {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.TransactionCategory, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransactionCategory
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCategoryRepository) List(ctx context.Context, userID string, kind *domain.TransactionType) ([]*domain.TransactionCategory, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TransactionCategory
	for _, id := range m.order {
		c, ok := m.categories[id]
		if !ok || c.UserID != userID || c.Deleted {
			continue
		}
		if kind != nil && c.Kind != *kind {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.TransactionCategory) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) SoftDeleteByID(ctx context.Context, id, userID string) (string, error) {
	if m.SoftDeleteByIDFunc != nil {
		return m.SoftDeleteByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok || c.UserID != userID || c.Deleted {
		return "", nil
	}
	c.Deleted = true
	return id, nil
}

// MockCryptoPortfolioRepository is a mock implementation of
// CryptoPortfolioRepository.
type MockCryptoPortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.CryptoPortfolio
	order      []string

	CreateFunc     func(ctx context.Context, portfolio *domain.CryptoPortfolio) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.CryptoPortfolio, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.CryptoPortfolio, error)
	UpdateFunc     func(ctx context.Context, portfolio *domain.CryptoPortfolio) error
	DeleteByIDFunc func(ctx context.Context, id, userID string) (string, error)
}

func NewMockCryptoPortfolioRepository() *MockCryptoPortfolioRepository {
	return &MockCryptoPortfolioRepository{
		portfolios: make(map[string]*domain.CryptoPortfolio),
	}
}

func (m *MockCryptoPortfolioRepository) Create(ctx context.Context, portfolio *domain.CryptoPortfolio) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, portfolio)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.portfolios {
		if p.UserID == portfolio.UserID && p.Title == portfolio.Title {
			return domain.ErrPortfolioExists
		}
	}
	m.portfolios[portfolio.ID] = portfolio
	m.order = append(m.order, portfolio.ID)
	return nil
}

func (m *MockCryptoPortfolioRepository) GetByID(ctx context.Context, id string) (*domain.CryptoPortfolio, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.portfolios[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPortfolioNotFound
}

func (m *MockCryptoPortfolioRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CryptoPortfolio, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CryptoPortfolio
	for _, id := range m.order {
		if p, ok := m.portfolios[id]; ok && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCryptoPortfolioRepository) Update(ctx context.Context, portfolio *domain.CryptoPortfolio) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, portfolio)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.portfolios[portfolio.ID]; !ok {
		return domain.ErrPortfolioNotFound
	}
	m.portfolios[portfolio.ID] = portfolio
	return nil
}

func (m *MockCryptoPortfolioRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[id]
	if !ok || p.UserID != userID {
		return "", nil
	}
	delete(m.portfolios, id)
	return id, nil
}

// MockCryptoCurrencyRepository is a mock implementation of
// CryptoCurrencyRepository.
type MockCryptoCurrencyRepository struct {
	mu         sync.RWMutex
	currencies map[string]*domain.CryptoCurrency
	order      []string

	CreateFunc      func(ctx context.Context, currency *domain.CryptoCurrency) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.CryptoCurrency, error)
	GetByCodeFunc   func(ctx context.Context, code string) (*domain.CryptoCurrency, error)
	ListFunc        func(ctx context.Context) ([]*domain.CryptoCurrency, error)
	UpdatePriceFunc func(ctx context.Context, id string, price decimal.Decimal, updatedAt time.Time) error
}

func NewMockCryptoCurrencyRepository() *MockCryptoCurrencyRepository {
	return &MockCryptoCurrencyRepository{
		currencies: make(map[string]*domain.CryptoCurrency),
	}
}

func (m *MockCryptoCurrencyRepository) Create(ctx context.Context, currency *domain.CryptoCurrency) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, currency)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.currencies {
		if c.Code == currency.Code {
			return domain.ErrCryptoCurrencyExists
		}
	}
	m.currencies[currency.ID] = currency
	m.order = append(m.order, currency.ID)
	return nil
}

func (m *MockCryptoCurrencyRepository) GetByID(ctx context.Context, id string) (*domain.CryptoCurrency, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.currencies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCryptoCurrencyNotFound
}

func (m *MockCryptoCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.CryptoCurrency, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, domain.ErrCryptoCurrencyNotFound
}

func (m *MockCryptoCurrencyRepository) List(ctx context.Context) ([]*domain.CryptoCurrency, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CryptoCurrency
	for _, id := range m.order {
		if c, ok := m.currencies[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCryptoCurrencyRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal, updatedAt time.Time) error {
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, id, price, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.currencies[id]
	if !ok {
		return domain.ErrCryptoCurrencyNotFound
	}
	c.Price = price
	c.UpdatedAt = updatedAt
	return nil
}

// MockCryptoAssetRepository is a mock implementation of
// CryptoAssetRepository.
type MockCryptoAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.CryptoAsset
	order  []string

	CreateFunc           func(ctx context.Context, asset *domain.CryptoAsset) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.CryptoAsset, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.CryptoAsset, error)
	UpdateAmountFunc     func(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error
	ListByPortfolioFunc  func(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoAsset, error)
	DeleteByIDFunc       func(ctx context.Context, id, userID string) (string, error)
}

func NewMockCryptoAssetRepository() *MockCryptoAssetRepository {
	return &MockCryptoAssetRepository{
		assets: make(map[string]*domain.CryptoAsset),
	}
}

func (m *MockCryptoAssetRepository) Create(ctx context.Context, asset *domain.CryptoAsset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
	m.order = append(m.order, asset.ID)
	return nil
}

func (m *MockCryptoAssetRepository) GetByID(ctx context.Context, id string) (*domain.CryptoAsset, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assets[id]; ok {
		return a, nil
	}
	return nil, domain.ErrCryptoAssetNotFound
}

func (m *MockCryptoAssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CryptoAsset, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCryptoAssetRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateAmountFunc != nil {
		return m.UpdateAmountFunc(ctx, tx, id, amount, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return domain.ErrCryptoAssetNotFound
	}
	a.Amount = amount
	a.UpdatedAt = updatedAt
	return nil
}

func (m *MockCryptoAssetRepository) ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoAsset, error) {
	if m.ListByPortfolioFunc != nil {
		return m.ListByPortfolioFunc(ctx, portfolioID, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CryptoAsset
	for _, id := range m.order {
		if a, ok := m.assets[id]; ok && a.PortfolioID == portfolioID && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockCryptoAssetRepository) DeleteByID(ctx context.Context, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok || a.UserID != userID {
		return "", nil
	}
	delete(m.assets, id)
	return id, nil
}

// MockCryptoTransactionRepository is a mock implementation of
// CryptoTransactionRepository.
type MockCryptoTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.CryptoTransaction
	order        []string

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, transaction *domain.CryptoTransaction) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.CryptoTransaction, error)
	ListByPortfolioFunc func(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoTransaction, error)
	DeleteByIDFunc      func(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error)
}

func NewMockCryptoTransactionRepository() *MockCryptoTransactionRepository {
	return &MockCryptoTransactionRepository{
		transactions: make(map[string]*domain.CryptoTransaction),
	}
}

func (m *MockCryptoTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, transaction *domain.CryptoTransaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID] = transaction
	m.order = append(m.order, transaction.ID)
	return nil
}

func (m *MockCryptoTransactionRepository) GetByID(ctx context.Context, id string) (*domain.CryptoTransaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrCryptoTransactionNotFound
}

func (m *MockCryptoTransactionRepository) ListByPortfolio(ctx context.Context, portfolioID, userID string) ([]*domain.CryptoTransaction, error) {
	if m.ListByPortfolioFunc != nil {
		return m.ListByPortfolioFunc(ctx, portfolioID, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CryptoTransaction
	for _, id := range m.order {
		if t, ok := m.transactions[id]; ok && t.PortfolioID == portfolioID && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockCryptoTransactionRepository) DeleteByID(ctx context.Context, tx usecase.Transaction, id, userID string) (string, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, tx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok || t.UserID != userID {
		return "", nil
	}
	delete(m.transactions, id)
	return id, nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock transaction manager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential IDs for deterministic tests.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + itoa(m.counter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func equalOwner(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	}
	return *a == *b
}
