package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_Summarize(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSummaryRepository)
	repo.On("TotalsByEntryType", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Currency == "USD" && f.EntryType == domain.Debit
	})).Return([]domain.EntryTypeTotal{
		{EntryType: domain.Debit, Count: 3, Total: decimal.RequireFromString("150.25")},
	}, nil).Once()

	summary, err := services.NewSummaryService(repo).Summarize(ctx, domain.EntryFilter{Currency: "usd", EntryType: "DEBIT"})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.NumDebits)
	assert.Equal(t, 0, summary.NumCredits)
	assert.True(t, summary.TotalCreditAmount.IsZero())
	assert.False(t, summary.IsBalanced)
	repo.AssertExpectations(t)
}

func TestSummaryService_Errors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSummaryRepository)
	svc := services.NewSummaryService(repo)

	_, err := svc.Summarize(ctx, domain.EntryFilter{EntryType: "refund"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.On("TotalsByEntryType", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()
	_, err = svc.Summarize(ctx, domain.EntryFilter{})
	assert.EqualError(t, err, "db down")
}
