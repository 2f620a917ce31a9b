package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType indicates whether an entry debits or credits its account.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// LedgerCurrency is the only currency the books are kept in.
const LedgerCurrency = money.USD

// AmountScale is the number of decimal places stored for an amount.
const AmountScale = 2

// MaxDescriptionLength bounds free-text descriptions, in characters.
const MaxDescriptionLength = 1000

// TimestampPrecision is the resolution of TIMESTAMPTZ columns. Times are
// truncated to it before they are compared or returned.
const TimestampPrecision = time.Microsecond

// IsValid reports whether t is one of the known entry types.
func (t EntryType) IsValid() bool {
	return t == Debit || t == Credit
}

// ParseEntryType normalizes s (case-insensitive) into an EntryType.
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", apperrors.NewValidationError("entry_type must be one of debit, credit (got %q)", s)
	}
	return t, nil
}

// NormalizeCurrency upper-cases and validates a currency code against ISO 4217,
// then requires it to be the ledger currency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return LedgerCurrency, nil
	}
	if money.GetCurrency(code) == nil {
		return "", apperrors.NewValidationError("unknown currency code %q", code)
	}
	if code != LedgerCurrency {
		return "", apperrors.NewValidationError("only %s entries are supported (got %s)", LedgerCurrency, code)
	}
	return code, nil
}

// ValidateAmount enforces a strictly positive amount with at most two decimals.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero (got %s)", amount.String())
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return apperrors.NewValidationError("amount supports at most %d decimal places (got %s)", AmountScale, amount.String())
	}
	return nil
}

// LedgerEntry is a single debit or credit recorded against one account.
type LedgerEntry struct {
	EntryID        string          `json:"id"`           // Primary Key (UUID)
	AccountID      string          `json:"account_id"`   // FK -> accounts.account_id, immutable
	AccountName    string          `json:"account_name"` // Joined from accounts, read-only
	EntryType      EntryType       `json:"entry_type"`   // debit or credit, immutable
	Amount         decimal.Decimal `json:"amount"`       // Always > 0
	Currency       string          `json:"currency"`     // Always USD
	Description    *string         `json:"description"`  // Nullable
	Date           time.Time       `json:"date"`         // Effective date, immutable
	Version        int             `json:"version"`      // Starts at 1, +1 per mutation
	IsDeleted      bool            `json:"is_deleted"`   // Soft delete flag, never reverted
	IdempotencyKey string          `json:"-"`            // Duplicate-submission detection only
	AuditFields
}

// EntryPayload is the client-controlled part of an entry creation request.
// Account holds an account name or id.
type EntryPayload struct {
	Account     string    `validate:"required"`
	EntryType   EntryType `validate:"required,oneof=debit credit"`
	Amount      decimal.Decimal
	Currency    string  `validate:"omitempty,len=3"`
	Description *string `validate:"omitempty,max=1000"`
	Date        *time.Time
}

// Normalize returns a copy of p with entry type, currency and description in
// canonical form. It reports validation failures for the payload's own fields.
func (p EntryPayload) Normalize() (EntryPayload, error) {
	out := p
	out.Account = strings.TrimSpace(p.Account)
	if out.Account == "" {
		return out, apperrors.NewValidationError("account is required")
	}

	entryType, err := ParseEntryType(string(p.EntryType))
	if err != nil {
		return out, err
	}
	out.EntryType = entryType

	currency, err := NormalizeCurrency(p.Currency)
	if err != nil {
		return out, err
	}
	out.Currency = currency

	if err := ValidateAmount(p.Amount); err != nil {
		return out, err
	}

	if p.Description != nil && utf8.RuneCountInString(*p.Description) > MaxDescriptionLength {
		return out, apperrors.NewValidationError("description exceeds %d characters", MaxDescriptionLength)
	}
	if p.Date != nil {
		d := p.Date.UTC().Truncate(TimestampPrecision)
		out.Date = &d
	}
	return out, nil
}

// SameAs reports whether the stored entry was produced by an equivalent payload.
// Only client-controlled fields are compared; server-assigned ids, versions and
// timestamps are ignored. A payload without a date matches any stored date since
// the server chose it.
func (e LedgerEntry) SameAs(accountID string, p EntryPayload) bool {
	if e.AccountID != accountID ||
		e.EntryType != p.EntryType ||
		!e.Amount.Equal(p.Amount) ||
		e.Currency != p.Currency ||
		stringValue(e.Description) != stringValue(p.Description) {
		return false
	}
	if p.Date != nil && !e.Date.Equal(*p.Date) {
		return false
	}
	return true
}

// LedgerEntryView is an entry as returned to callers: the stored record plus a
// CAD amount computed at response time. CanadianAmount is nil when no rate was
// available.
type LedgerEntryView struct {
	LedgerEntry
	CanadianAmount *decimal.Decimal `json:"canadian_amount"`
}

// UpdateEntryInput describes a partial update. Only Amount and Description are
// mutable; the remaining optional fields exist so attempts to change immutable
// fields can be detected and rejected.
type UpdateEntryInput struct {
	ExpectedVersion *int
	Amount          *decimal.Decimal
	Description     *string
	EntryType       *EntryType
	AccountID       *string
	Currency        *string
	Date            *time.Time
}

// CheckImmutable rejects any supplied immutable field that differs from e.
func (in UpdateEntryInput) CheckImmutable(e LedgerEntry) error {
	var changed []string
	if in.EntryType != nil && EntryType(strings.ToLower(string(*in.EntryType))) != e.EntryType {
		changed = append(changed, "entry_type")
	}
	if in.AccountID != nil && *in.AccountID != e.AccountID {
		changed = append(changed, "account_id")
	}
	if in.Currency != nil && strings.ToUpper(*in.Currency) != e.Currency {
		changed = append(changed, "currency")
	}
	if in.Date != nil && !in.Date.Equal(e.Date) {
		changed = append(changed, "date")
	}
	if len(changed) > 0 {
		return apperrors.NewValidationError("immutable fields cannot be changed: %s", strings.Join(changed, ", "))
	}
	return nil
}

// Apply validates the mutable fields and returns e with them applied. It fails
// when nothing mutable was supplied or when the supplied values equal the stored ones.
func (in UpdateEntryInput) Apply(e LedgerEntry) (LedgerEntry, error) {
	if in.Amount == nil && in.Description == nil {
		return e, apperrors.NewValidationError("no fields provided to update")
	}

	changed := false
	if in.Amount != nil {
		if err := ValidateAmount(*in.Amount); err != nil {
			return e, err
		}
		if !in.Amount.Equal(e.Amount) {
			e.Amount = *in.Amount
			changed = true
		}
	}
	if in.Description != nil {
		if utf8.RuneCountInString(*in.Description) > MaxDescriptionLength {
			return e, apperrors.NewValidationError("description exceeds %d characters", MaxDescriptionLength)
		}
		if *in.Description != stringValue(e.Description) {
			d := *in.Description
			e.Description = &d
			changed = true
		}
	}
	if !changed {
		return e, apperrors.NewValidationError("no changes detected in update")
	}
	return e, nil
}

// DeletedEntry confirms a soft delete.
type DeletedEntry struct {
	EntryID   string    `json:"id"`
	IsDeleted bool      `json:"is_deleted"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// String is used in log lines.
func (e LedgerEntry) String() string {
	return fmt.Sprintf("%s %s %s %s v%d", e.EntryID, e.EntryType, e.Amount.StringFixed(AmountScale), e.Currency, e.Version)
}
