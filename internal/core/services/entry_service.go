package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// entryService implements the EntrySvcFacade interface
type entryService struct {
	BaseService
	entryRepo  portsrepo.LedgerEntryRepositoryFacade
	accounts   portssvc.AccountReaderSvc
	conversion portssvc.ConversionSvc
	now        func() time.Time
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithEntryClock overrides the clock used for default dates and timestamps.
func WithEntryClock(now func() time.Time) EntryServiceOption {
	return func(s *entryService) {
		s.now = now
	}
}

// NewEntryService creates a new ledger entry service.
func NewEntryService(repo portsrepo.LedgerEntryRepositoryFacade, accounts portssvc.AccountReaderSvc, conversion portssvc.ConversionSvc, options ...EntryServiceOption) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo:  repo,
		accounts:   accounts,
		conversion: conversion,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) CreateEntry(ctx context.Context, payload domain.EntryPayload, idempotencyKey string) (*domain.LedgerEntry, error) {
	key, err := uuid.Parse(idempotencyKey)
	if err != nil {
		return nil, apperrors.NewValidationError("idempotency key must be a UUID (got %q)", idempotencyKey)
	}
	payload, err = payload.Normalize()
	if err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}

	account, err := s.accounts.Resolve(ctx, payload.Account)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to resolve account for entry", slog.String("account", payload.Account))
		return nil, err
	}

	now := s.timestamp()
	date := now
	if payload.Date != nil {
		date = *payload.Date
	}

	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		AccountID:      account.AccountID,
		AccountName:    account.Name,
		EntryType:      payload.EntryType,
		Amount:         payload.Amount,
		Currency:       payload.Currency,
		Description:    payload.Description,
		Date:           date,
		Version:        1,
		IsDeleted:      false,
		IdempotencyKey: key.String(),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogFailure(ctx, err, "Failed to save ledger entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("account_id", entry.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", entry.AccountID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("amount", entry.Amount.StringFixed(domain.AmountScale)))
	return &entry, nil
}

// findLive returns the entry unless it is missing or soft-deleted.
func (s *entryService) findLive(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, apperrors.NewNotFoundError("entry " + entryID)
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsDeleted {
		return nil, apperrors.NewNotFoundError("entry " + entryID)
	}
	return entry, nil
}

func (s *entryService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntryView, error) {
	entry, err := s.findLive(ctx, entryID)
	if err != nil {
		return nil, err
	}
	view := s.conversion.Decorate(ctx, []domain.LedgerEntry{*entry})[0]
	return &view, nil
}

func (s *entryService) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.LedgerEntryView, *domain.EntryPage, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, nil, err
	}
	page, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list ledger entries")
		return nil, nil, err
	}
	return s.conversion.Decorate(ctx, page.Entries), page, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, entryID string, input domain.UpdateEntryInput) (*domain.LedgerEntryView, error) {
	current, err := s.findLive(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := input.CheckImmutable(*current); err != nil {
		return nil, err
	}
	if err := checkExpectedVersion(current, input.ExpectedVersion); err != nil {
		return nil, err
	}
	changed, err := input.Apply(*current)
	if err != nil {
		return nil, err
	}

	stored, err := s.entryRepo.UpdateEntry(ctx, changed, current.Version, s.timestamp())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry updated successfully",
		slog.String("entry_id", entryID),
		slog.Int("version", stored.Version))
	view := s.conversion.Decorate(ctx, []domain.LedgerEntry{*stored})[0]
	return &view, nil
}

func (s *entryService) SoftDeleteEntry(ctx context.Context, entryID string, expectedVersion *int) (*domain.DeletedEntry, error) {
	current, err := s.findLive(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := checkExpectedVersion(current, expectedVersion); err != nil {
		return nil, err
	}

	deleted, err := s.entryRepo.SoftDeleteEntry(ctx, entryID, current.Version, s.timestamp())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry deleted", slog.String("entry_id", entryID), slog.Int("version", deleted.Version))
	return deleted, nil
}

func checkExpectedVersion(current *domain.LedgerEntry, expected *int) error {
	if expected != nil && *expected != current.Version {
		return fmt.Errorf("%w: entry %s is at version %d, not %d",
			apperrors.ErrVersionConflict, current.EntryID, current.Version, *expected)
	}
	return nil
}

// timestamp returns the current time at the precision the store keeps.
func (s *entryService) timestamp() time.Time {
	return s.now().UTC().Truncate(domain.TimestampPrecision)
}
