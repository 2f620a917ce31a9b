package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger entries
type LedgerEntryReader interface {
	// FindEntryByID returns the entry regardless of its deleted flag.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntryByIdempotencyKey returns the entry that consumed key, deleted or not.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error)

	// ListEntries returns one page of non-deleted entries matching filter.
	ListEntries(ctx context.Context, filter domain.EntryFilter) (*domain.EntryPage, error)
}

// LedgerEntryWriter defines write operations for ledger entries
type LedgerEntryWriter interface {
	// SaveEntry inserts a new entry after re-checking, in the same transaction,
	// that its account exists and is active. A consumed idempotency key yields
	// apperrors.ErrDuplicateIdempotencyKey.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry writes amount and description if the stored version still
	// equals expectedVersion, and returns the stored row after the bump.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry, expectedVersion int, now time.Time) (*domain.LedgerEntry, error)

	// SoftDeleteEntry flags the entry deleted under the same version check.
	SoftDeleteEntry(ctx context.Context, entryID string, expectedVersion int, now time.Time) (*domain.DeletedEntry, error)
}

// LedgerEntryRepositoryFacade combines all entry-related repository interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
