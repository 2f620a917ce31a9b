package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its exact (case-sensitive) name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListActiveAccounts retrieves active accounts ordered by creation time.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken name yields apperrors.ErrDuplicateName.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount writes only the supplied fields of an existing account and
	// returns the stored row. Nil fields keep their current value.
	UpdateAccount(ctx context.Context, accountID string, changes domain.UpdateAccountInput) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
