package handlers_test

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID))
}
func (m *MockAccountService) GetActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) Resolve(ctx context.Context, nameOrID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, nameOrID))
}
func (m *MockAccountService) Lookup(ctx context.Context, nameOrID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, nameOrID))
}
func (m *MockAccountService) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	return m.account(m.Called(ctx, input))
}
func (m *MockAccountService) RenameAccount(ctx context.Context, accountID string, name string) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, name))
}
func (m *MockAccountService) SetActive(ctx context.Context, accountID string, isActive bool) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, isActive))
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error) {
	return m.account(m.Called(ctx, accountID, input))
}

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) view(args mock.Arguments) (*domain.LedgerEntryView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntryView), args.Error(1)
}

func (m *MockEntryService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntryView, error) {
	return m.view(m.Called(ctx, entryID))
}
func (m *MockEntryService) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntryView, *domain.EntryPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntryView), args.Get(1).(*domain.EntryPage), args.Error(2)
}
func (m *MockEntryService) CreateEntry(ctx context.Context, payload domain.EntryPayload, idempotencyKey string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, payload, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockEntryService) UpdateEntry(ctx context.Context, entryID string, input domain.UpdateEntryInput) (*domain.LedgerEntryView, error) {
	return m.view(m.Called(ctx, entryID, input))
}
func (m *MockEntryService) SoftDeleteEntry(ctx context.Context, entryID string, expectedVersion *int) (*domain.DeletedEntry, error) {
	args := m.Called(ctx, entryID, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletedEntry), args.Error(1)
}

// --- Mock IdempotencyGuard ---
type MockIdempotencyService struct {
	mock.Mock
}

func (m *MockIdempotencyService) SubmitCreate(ctx context.Context, key string, payload domain.EntryPayload) (*domain.LedgerEntryView, bool, error) {
	args := m.Called(ctx, key, payload)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntryView), args.Bool(1), args.Error(2)
}

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summarize(ctx context.Context, filter domain.EntryFilter) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Snapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}
func (m *MockConversionService) Convert(ctx context.Context, amountUSD decimal.Decimal) (*domain.Conversion, error) {
	args := m.Called(ctx, amountUSD)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}
func (m *MockConversionService) Decorate(ctx context.Context, entries []domain.LedgerEntry) []domain.LedgerEntryView {
	args := m.Called(ctx, entries)
	return args.Get(0).([]domain.LedgerEntryView)
}
