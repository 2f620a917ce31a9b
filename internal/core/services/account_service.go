package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for created_at.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      input.Name,
		IsActive:  true,
		CreatedAt: s.now().UTC().Truncate(domain.TimestampPrecision),
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) RenameAccount(ctx context.Context, accountID string, name string) (*domain.Account, error) {
	return s.UpdateAccount(ctx, accountID, domain.UpdateAccountInput{Name: &name})
}

func (s *accountService) SetActive(ctx context.Context, accountID string, isActive bool) (*domain.Account, error) {
	return s.UpdateAccount(ctx, accountID, domain.UpdateAccountInput{IsActive: &isActive})
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, input domain.UpdateAccountInput) (*domain.Account, error) {
	if input.Name == nil && input.IsActive == nil {
		return nil, apperrors.NewValidationError("no fields provided to update")
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Only differing fields are written; the rest stay as the database holds them.
	var changes domain.UpdateAccountInput
	if input.Name != nil && *input.Name != account.Name {
		changes.Name = input.Name
	}
	if input.IsActive != nil && *input.IsActive != account.IsActive {
		changes.IsActive = input.IsActive
	}
	if changes.Name == nil && changes.IsActive == nil {
		return account, nil
	}

	account, err = s.accountRepo.UpdateAccount(ctx, accountID, changes)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID),
		slog.String("name", account.Name),
		slog.Bool("is_active", account.IsActive))
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active accounts")
		return nil, err
	}
	return accounts, nil
}

// Lookup matches nameOrID against account ids first when it is a UUID, then
// against exact names.
func (s *accountService) Lookup(ctx context.Context, nameOrID string) (*domain.Account, error) {
	ref := strings.TrimSpace(nameOrID)
	if ref == "" {
		return nil, apperrors.NewValidationError("account is required")
	}

	if _, err := uuid.Parse(ref); err == nil {
		account, err := s.accountRepo.FindAccountByID(ctx, ref)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.accountRepo.FindAccountByName(ctx, ref)
}

func (s *accountService) Resolve(ctx context.Context, nameOrID string) (*domain.Account, error) {
	account, err := s.Lookup(ctx, nameOrID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInactiveAccount, account.Name)
	}
	return account, nil
}
