package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
	"github.com/SscSPs/general_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const entrySelect = `
	SELECT e.entry_id::text, e.account_id::text, a.name, e.entry_type, e.amount, e.currency,
	       e.description, e.date, e.version, e.is_deleted, e.idempotency_key::text,
	       e.created_at, e.updated_at
	FROM ledger_entries e
	JOIN accounts a ON a.account_id = e.account_id
`

type PgxLedgerEntryRepository struct {
	BaseRepository
}

// newPgxLedgerEntryRepository creates a new repository for ledger entries.
func newPgxLedgerEntryRepository(pool DBPool) *PgxLedgerEntryRepository {
	return &PgxLedgerEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerEntryRepository implements portsrepo.LedgerEntryRepositoryFacade
var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.AccountName,
		&m.EntryType,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Date,
		&m.Version,
		&m.IsDeleted,
		&m.IdempotencyKey,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveEntry inserts a new entry. The account row is share-locked for the
// duration of the insert so a concurrent deactivation cannot interleave.
func (r *PgxLedgerEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	var isActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM accounts WHERE account_id = $1 FOR SHARE;`, m.AccountID).Scan(&isActive)
	if err != nil {
		return translateError(err, "account "+m.AccountID)
	}
	if !isActive {
		return fmt.Errorf("%w: %s", apperrors.ErrInactiveAccount, m.AccountID)
	}

	query := `
		INSERT INTO ledger_entries (entry_id, account_id, date, entry_type, amount, currency, description,
		                            version, is_deleted, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.EntryID,
		m.AccountID,
		m.Date,
		m.EntryType,
		m.Amount,
		m.Currency,
		m.Description,
		m.Version,
		m.IsDeleted,
		m.IdempotencyKey,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "entry "+m.EntryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry, including soft-deleted ones.
func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	m, err := scanEntry(r.Pool.QueryRow(ctx, entrySelect+` WHERE e.entry_id = $1;`, entryID))
	if err != nil {
		return nil, translateError(err, "entry "+entryID)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// FindEntryByIdempotencyKey retrieves the entry that consumed key.
func (r *PgxLedgerEntryRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	m, err := scanEntry(r.Pool.QueryRow(ctx, entrySelect+` WHERE e.idempotency_key = $1;`, key))
	if err != nil {
		return nil, translateError(err, "idempotency key "+key)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// UpdateEntry performs a compare-and-swap on version.
func (r *PgxLedgerEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry, expectedVersion int, now time.Time) (*domain.LedgerEntry, error) {
	query := `
		UPDATE ledger_entries
		SET amount = $1, description = $2, version = version + 1, updated_at = $3
		WHERE entry_id = $4 AND version = $5 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, entry.Amount, entry.Description, now, entry.EntryID, expectedVersion)
	if err != nil {
		return nil, translateError(err, "entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return nil, r.casFailure(ctx, entry.EntryID)
	}
	return r.FindEntryByID(ctx, entry.EntryID)
}

// SoftDeleteEntry flags an entry deleted; a delete is a mutation and bumps version.
func (r *PgxLedgerEntryRepository) SoftDeleteEntry(ctx context.Context, entryID string, expectedVersion int, now time.Time) (*domain.DeletedEntry, error) {
	query := `
		UPDATE ledger_entries
		SET is_deleted = TRUE, version = version + 1, updated_at = $1
		WHERE entry_id = $2 AND version = $3 AND is_deleted = FALSE
		RETURNING entry_id::text, is_deleted, version, updated_at;
	`
	var deleted domain.DeletedEntry
	err := r.Pool.QueryRow(ctx, query, now, entryID, expectedVersion).
		Scan(&deleted.EntryID, &deleted.IsDeleted, &deleted.Version, &deleted.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.casFailure(ctx, entryID)
	}
	if err != nil {
		return nil, translateError(err, "entry "+entryID)
	}
	return &deleted, nil
}

// casFailure explains why a versioned write matched no row.
func (r *PgxLedgerEntryRepository) casFailure(ctx context.Context, entryID string) error {
	current, err := r.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if current.IsDeleted {
		return apperrors.NewNotFoundError("entry " + entryID)
	}
	return fmt.Errorf("%w: entry %s is at version %d", apperrors.ErrVersionConflict, entryID, current.Version)
}

// ListEntries retrieves one keyset page of non-deleted entries ordered by
// date, created_at and entry_id, all descending, plus the total match count.
func (r *PgxLedgerEntryRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) (*domain.EntryPage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	where := entryFilterWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM ledger_entries e JOIN accounts a ON a.account_id = e.account_id ` + where.String() + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid next_token: %v", err)
		}
		// Tuple comparison is concise and efficient in Postgres
		where.args = append(where.args, cursor.Date, cursor.CreatedAt, cursor.EntryID)
		n := len(where.args)
		where.clauses = append(where.clauses,
			fmt.Sprintf("(e.date, e.created_at, e.entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}

	where.args = append(where.args, fetchLimit)
	query := entrySelect + where.String() +
		` ORDER BY e.date DESC, e.created_at DESC, e.entry_id DESC LIMIT ` + where.next() + `;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}

	page := &domain.EntryPage{Total: total}
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this page.
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.EntryID)
		page.NextToken = &token
		results = modelEntries[:limit]
	}
	page.Entries = mapping.ToDomainLedgerEntrySlice(results)
	return page, nil
}
