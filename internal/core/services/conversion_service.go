package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type conversionService struct {
	BaseService
	provider portsrepo.RateProvider
	now      func() time.Time
}

// NewConversionService wraps a rate provider. A nil provider makes every
// conversion unavailable.
func NewConversionService(provider portsrepo.RateProvider) portssvc.ConversionSvc {
	return &conversionService{provider: provider, now: time.Now}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

func (s *conversionService) Snapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no rate provider configured", apperrors.ErrConversionUnavailable)
	}
	rate, err := s.provider.USDToCAD(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConversionUnavailable) {
			err = fmt.Errorf("%w: %v", apperrors.ErrConversionUnavailable, err)
		}
		return nil, err
	}
	return &domain.RateSnapshot{Rate: rate, FetchedAt: s.now().UTC()}, nil
}

func (s *conversionService) Convert(ctx context.Context, amountUSD decimal.Decimal) (*domain.Conversion, error) {
	if amountUSD.IsNegative() {
		return nil, apperrors.NewValidationError("amount must not be negative (got %s)", amountUSD)
	}
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		s.LogWarn(ctx, "Currency conversion unavailable", slog.String("error", err.Error()))
		return nil, err
	}
	return &domain.Conversion{
		AmountUSD:    amountUSD,
		AmountCAD:    snapshot.Convert(amountUSD),
		RateSnapshot: *snapshot,
	}, nil
}

// Decorate attaches canadian_amount to every entry using one rate. When no rate
// can be obtained the entries are returned with a nil canadian_amount.
func (s *conversionService) Decorate(ctx context.Context, entries []domain.LedgerEntry) []domain.LedgerEntryView {
	views := make([]domain.LedgerEntryView, len(entries))
	for i, e := range entries {
		views[i] = domain.LedgerEntryView{LedgerEntry: e}
	}
	if len(entries) == 0 {
		return views
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		s.LogWarn(ctx, "Currency conversion unavailable, omitting canadian_amount",
			slog.String("error", err.Error()),
			slog.Int("entries", len(entries)))
		return views
	}
	for i := range views {
		cad := snapshot.Convert(views[i].Amount)
		views[i].CanadianAmount = &cad
	}
	return views
}
