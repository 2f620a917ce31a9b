package domain

import "github.com/shopspring/decimal"

// LedgerSummary holds live debit/credit totals over non-deleted entries.
type LedgerSummary struct {
	NumDebits         int             `json:"num_debits"`
	TotalDebitAmount  decimal.Decimal `json:"total_debit_amount"`
	NumCredits        int             `json:"num_credits"`
	TotalCreditAmount decimal.Decimal `json:"total_credit_amount"`
	IsBalanced        bool            `json:"is_balanced"`
}

// EntryTypeTotal is one aggregated row per entry type.
type EntryTypeTotal struct {
	EntryType EntryType
	Count     int
	Total     decimal.Decimal
}

// NewLedgerSummary folds per-type totals into a summary. Missing types count as zero.
func NewLedgerSummary(totals []EntryTypeTotal) LedgerSummary {
	s := LedgerSummary{
		TotalDebitAmount:  decimal.Zero,
		TotalCreditAmount: decimal.Zero,
	}
	for _, t := range totals {
		switch t.EntryType {
		case Debit:
			s.NumDebits += t.Count
			s.TotalDebitAmount = s.TotalDebitAmount.Add(t.Total)
		case Credit:
			s.NumCredits += t.Count
			s.TotalCreditAmount = s.TotalCreditAmount.Add(t.Total)
		}
	}
	s.IsBalanced = s.TotalDebitAmount.Equal(s.TotalCreditAmount)
	return s
}
