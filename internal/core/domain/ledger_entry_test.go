package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEntryPayloadNormalize(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	date := time.Date(2024, 1, 1, 20, 0, 0, 0, est)
	long := strings.Repeat("x", domain.MaxDescriptionLength+1)
	accented := strings.Repeat("é", domain.MaxDescriptionLength)

	tests := []struct {
		name    string
		payload domain.EntryPayload
		wantErr bool
	}{
		{"valid", domain.EntryPayload{Account: " Cash ", EntryType: "Debit", Amount: dec("10.50"), Currency: "usd", Date: &date}, false},
		{"default currency", domain.EntryPayload{Account: "Cash", EntryType: "credit", Amount: dec("1")}, false},
		{"blank account", domain.EntryPayload{Account: "  ", EntryType: "debit", Amount: dec("1")}, true},
		{"bad type", domain.EntryPayload{Account: "Cash", EntryType: "refund", Amount: dec("1")}, true},
		{"unknown currency", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("1"), Currency: "QQQ"}, true},
		{"other currency", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("1"), Currency: "EUR"}, true},
		{"zero", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("0")}, true},
		{"too precise", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("0.001")}, true},
		{"long description", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("1"), Description: &long}, true},
		{"multibyte description at limit", domain.EntryPayload{Account: "Cash", EntryType: "debit", Amount: dec("1"), Description: &accented}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.payload.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "USD", got.Currency)
			assert.True(t, got.EntryType.IsValid())
			assert.Equal(t, strings.TrimSpace(tt.payload.Account), got.Account)
			if tt.payload.Date != nil {
				assert.Equal(t, time.UTC, got.Date.Location())
				assert.True(t, got.Date.Equal(date))
			}
		})
	}
}

func TestLedgerEntrySameAs(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	empty := ""
	entry := domain.LedgerEntry{
		AccountID: "acc-1",
		EntryType: domain.Debit,
		Amount:    dec("100.00"),
		Currency:  "USD",
		Date:      date,
	}
	base := domain.EntryPayload{EntryType: domain.Debit, Amount: dec("100"), Currency: "USD"}

	assert.True(t, entry.SameAs("acc-1", base))

	withEmptyDesc := base
	withEmptyDesc.Description = &empty
	assert.True(t, entry.SameAs("acc-1", withEmptyDesc), "nil and empty descriptions match")

	withDate := base
	withDate.Date = &date
	assert.True(t, entry.SameAs("acc-1", withDate))

	other := date.Add(24 * time.Hour)
	withDate.Date = &other
	assert.False(t, entry.SameAs("acc-1", withDate))

	precise := time.Date(2024, 1, 2, 10, 0, 0, 123456789, time.UTC)
	stored := entry
	stored.Date = time.Date(2024, 1, 2, 10, 0, 0, 123456000, time.UTC)
	retry := base
	retry.Account = "Cash"
	retry.Date = &precise
	normalized, err := retry.Normalize()
	require.NoError(t, err)
	assert.True(t, stored.SameAs("acc-1", normalized), "dates are compared at storage precision")

	changed := base
	changed.Amount = dec("75.00")
	assert.False(t, entry.SameAs("acc-1", changed))
	assert.False(t, entry.SameAs("acc-2", base))
}

func TestUpdateEntryInput(t *testing.T) {
	desc := "rent"
	entry := domain.LedgerEntry{
		EntryID:     "e1",
		AccountID:   "acc-1",
		EntryType:   domain.Debit,
		Amount:      dec("10.00"),
		Currency:    "USD",
		Description: &desc,
		Date:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Version:     1,
	}

	t.Run("immutable fields", func(t *testing.T) {
		credit := domain.Credit
		debit := domain.EntryType("DEBIT")
		usd := "usd"
		other := "acc-2"

		assert.NoError(t, domain.UpdateEntryInput{EntryType: &debit, Currency: &usd}.CheckImmutable(entry))

		err := domain.UpdateEntryInput{EntryType: &credit, AccountID: &other}.CheckImmutable(entry)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "entry_type, account_id")
	})

	t.Run("apply", func(t *testing.T) {
		amount := dec("12.34")
		got, err := domain.UpdateEntryInput{Amount: &amount}.Apply(entry)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(amount))
		assert.Equal(t, "rent", *got.Description)
		assert.Equal(t, 1, got.Version, "version is bumped by storage")

		cleared := ""
		got, err = domain.UpdateEntryInput{Description: &cleared}.Apply(entry)
		require.NoError(t, err)
		assert.Equal(t, "", *got.Description)

		accented := strings.Repeat("ü", domain.MaxDescriptionLength)
		got, err = domain.UpdateEntryInput{Description: &accented}.Apply(entry)
		require.NoError(t, err, "the limit counts characters")
		assert.Equal(t, accented, *got.Description)
	})

	t.Run("apply rejects", func(t *testing.T) {
		same := dec("10")
		zero := dec("0")
		sameDesc := "rent"

		_, err := domain.UpdateEntryInput{}.Apply(entry)
		assert.ErrorContains(t, err, "no fields provided")

		_, err = domain.UpdateEntryInput{Amount: &same, Description: &sameDesc}.Apply(entry)
		assert.ErrorContains(t, err, "no changes detected")

		_, err = domain.UpdateEntryInput{Amount: &zero}.Apply(entry)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
