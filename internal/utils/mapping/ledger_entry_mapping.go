package mapping

import (
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		AccountName:    d.AccountName,
		EntryType:      string(d.EntryType),
		Amount:         d.Amount,
		Currency:       d.Currency,
		Description:    d.Description,
		Date:           d.Date,
		Version:        d.Version,
		IsDeleted:      d.IsDeleted,
		IdempotencyKey: d.IdempotencyKey,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		EntryType:      domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		Currency:       m.Currency,
		Description:    m.Description,
		Date:           m.Date,
		Version:        m.Version,
		IsDeleted:      m.IsDeleted,
		IdempotencyKey: m.IdempotencyKey,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainEntryTypeTotals converts aggregate rows to domain totals
func ToDomainEntryTypeTotals(ms []models.EntryTypeTotal) []domain.EntryTypeTotal {
	ds := make([]domain.EntryTypeTotal, len(ms))
	for i, m := range ms {
		ds[i] = domain.EntryTypeTotal{
			EntryType: domain.EntryType(m.EntryType),
			Count:     m.Count,
			Total:     m.Total,
		}
	}
	return ds
}
