package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

const accountColumns = `account_id::text, name, is_active, created_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, name, is_active, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.IsActive, m.CreatedAt); err != nil {
		return translateError(err, "account "+m.Name)
	}
	return nil
}

// UpdateAccount sets only the supplied columns, so a rename never rewrites a
// status changed by a concurrent writer and vice versa.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, accountID string, changes domain.UpdateAccountInput) (*domain.Account, error) {
	var name, isActive any
	subject := "account " + accountID
	if changes.Name != nil {
		name = *changes.Name
		subject = "account " + *changes.Name
	}
	if changes.IsActive != nil {
		isActive = *changes.IsActive
	}
	query := `
		UPDATE accounts
		SET name = COALESCE($2, name), is_active = COALESCE($3, is_active)
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID, name, isActive).Scan(&m.AccountID, &m.Name, &m.IsActive, &m.CreatedAt)
	if err != nil {
		return nil, translateError(err, subject)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findOne(ctx, query, accountID, "account "+accountID)
}

// FindAccountByName retrieves an account by its exact name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1;`
	return r.findOne(ctx, query, name, "account "+name)
}

// ListActiveAccounts retrieves active accounts, oldest first.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY created_at ASC, account_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.Name, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg string, subject string) (*domain.Account, error) {
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, arg).Scan(&m.AccountID, &m.Name, &m.IsActive, &m.CreatedAt)
	if err != nil {
		return nil, translateError(err, subject)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}
