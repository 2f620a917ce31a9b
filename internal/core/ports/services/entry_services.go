package services

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReaderSvc defines read operations for ledger entries. Every returned
// entry carries a freshly computed canadian_amount.
type EntryReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntryView, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntryView, *domain.EntryPage, error)
}

// EntryWriterSvc defines write operations for ledger entries
type EntryWriterSvc interface {
	// CreateEntry validates and stores a new entry that consumes idempotencyKey.
	// Callers go through IdempotencySvc rather than calling this directly.
	CreateEntry(ctx context.Context, payload domain.EntryPayload, idempotencyKey string) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entryID string, input domain.UpdateEntryInput) (*domain.LedgerEntryView, error)
	SoftDeleteEntry(ctx context.Context, entryID string, expectedVersion *int) (*domain.DeletedEntry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}

// IdempotencySvc is the only entry point for entry creation.
type IdempotencySvc interface {
	// SubmitCreate creates the entry for an unseen key, or returns the original
	// entry with replayed set when the key was already used with the same payload.
	SubmitCreate(ctx context.Context, key string, payload domain.EntryPayload) (entry *domain.LedgerEntryView, replayed bool, err error)
}

// SummarySvc computes live totals.
type SummarySvc interface {
	Summarize(ctx context.Context, filter domain.EntryFilter) (*domain.LedgerSummary, error)
}

// ConversionSvc converts USD amounts to CAD for display.
type ConversionSvc interface {
	Snapshot(ctx context.Context) (*domain.RateSnapshot, error)
	Convert(ctx context.Context, amountUSD decimal.Decimal) (*domain.Conversion, error)
	Decorate(ctx context.Context, entries []domain.LedgerEntry) []domain.LedgerEntryView
}
