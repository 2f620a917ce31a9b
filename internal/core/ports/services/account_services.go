package services

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// GetActiveAccounts lists active accounts, oldest first.
	GetActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// Resolve finds an active account by id or exact name.
	Resolve(ctx context.Context, nameOrID string) (*domain.Account, error)

	// Lookup finds an account by id or exact name without the active check.
	Lookup(ctx context.Context, nameOrID string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error)
	RenameAccount(ctx context.Context, accountID string, name string) (*domain.Account, error)
	SetActive(ctx context.Context, accountID string, isActive bool) (*domain.Account, error)

	// UpdateAccount applies an optional rename followed by an optional status toggle.
	UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
