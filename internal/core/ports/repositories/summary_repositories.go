package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// SummaryReader aggregates non-deleted entries in storage.
type SummaryReader interface {
	// TotalsByEntryType returns one row per entry type present in the filtered set.
	TotalsByEntryType(ctx context.Context, filter domain.EntryFilter) ([]domain.EntryTypeTotal, error)
}
