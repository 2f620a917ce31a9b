package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table joined with its account name.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	AccountID      string          `db:"account_id"`
	AccountName    string          `db:"account_name"` // From accounts.name
	EntryType      string          `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"` // NUMERIC(12,2)
	Currency       string          `db:"currency"`
	Description    *string         `db:"description"` // Nullable
	Date           time.Time       `db:"date"`
	Version        int             `db:"version"`
	IsDeleted      bool            `db:"is_deleted"`
	IdempotencyKey string          `db:"idempotency_key"`
	AuditFields
}

// EntryTypeTotal is one row of the per-type aggregate query.
type EntryTypeTotal struct {
	EntryType string          `db:"entry_type"`
	Count     int             `db:"num_entries"`
	Total     decimal.Decimal `db:"total_amount"`
}
