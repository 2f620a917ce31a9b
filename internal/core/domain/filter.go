package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// EntryFilter narrows List and Summarize. Zero values mean "no constraint".
// Limit and NextToken only apply to List.
type EntryFilter struct {
	AccountName string
	Currency    string
	EntryType   EntryType
	StartDate   *time.Time
	EndDate     *time.Time

	Limit     int
	NextToken *string
}

// Normalize canonicalizes case-insensitive fields and checks the date range.
func (f EntryFilter) Normalize() (EntryFilter, error) {
	out := f
	out.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	if f.EntryType != "" {
		t, err := ParseEntryType(string(f.EntryType))
		if err != nil {
			return out, err
		}
		out.EntryType = t
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return out, apperrors.NewValidationError("start_date must not be after end_date")
	}
	switch {
	case f.Limit < 0:
		return out, apperrors.NewValidationError("limit must be positive (got %d)", f.Limit)
	case f.Limit == 0:
		out.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		out.Limit = MaxListLimit
	}
	if f.NextToken != nil && *f.NextToken == "" {
		out.NextToken = nil
	}
	return out, nil
}

// EntryPage is one page of a listing. Total counts every matching entry.
type EntryPage struct {
	Entries   []LedgerEntry
	Total     int
	NextToken *string
}
