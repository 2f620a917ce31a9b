package services

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

type summaryService struct {
	BaseService
	summaryRepo portsrepo.SummaryReader
}

// NewSummaryService creates a service computing totals on every call.
func NewSummaryService(repo portsrepo.SummaryReader) portssvc.SummarySvc {
	return &summaryService{summaryRepo: repo}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) Summarize(ctx context.Context, filter domain.EntryFilter) (*domain.LedgerSummary, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}
	totals, err := s.summaryRepo.TotalsByEntryType(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger entries")
		return nil, err
	}
	summary := domain.NewLedgerSummary(totals)
	return &summary, nil
}
