package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// idempotencyGuard routes entry creation so that a retried submission returns
// the entry its key already produced.
type idempotencyGuard struct {
	BaseService
	entries    portssvc.EntryWriterSvc
	entryRepo  portsrepo.LedgerEntryReader
	accounts   portssvc.AccountReaderSvc
	conversion portssvc.ConversionSvc
}

// NewIdempotencyGuard creates the entry-creation front door.
func NewIdempotencyGuard(entries portssvc.EntryWriterSvc, entryRepo portsrepo.LedgerEntryReader, accounts portssvc.AccountReaderSvc, conversion portssvc.ConversionSvc) portssvc.IdempotencySvc {
	return &idempotencyGuard{
		entries:    entries,
		entryRepo:  entryRepo,
		accounts:   accounts,
		conversion: conversion,
	}
}

var _ portssvc.IdempotencySvc = (*idempotencyGuard)(nil)

func (g *idempotencyGuard) SubmitCreate(ctx context.Context, key string, payload domain.EntryPayload) (*domain.LedgerEntryView, bool, error) {
	parsed, err := uuid.Parse(key)
	if err != nil {
		return nil, false, apperrors.NewValidationError("idempotency key must be a UUID (got %q)", key)
	}
	key = parsed.String()

	payload, err = payload.Normalize()
	if err != nil {
		return nil, false, err
	}

	existing, err := g.entryRepo.FindEntryByIdempotencyKey(ctx, key)
	switch {
	case err == nil:
		return g.replay(ctx, key, existing, payload)
	case !errors.Is(err, apperrors.ErrNotFound):
		g.LogError(ctx, err, "Failed to look up idempotency key", slog.String("idempotency_key", key))
		return nil, false, err
	}

	created, err := g.entries.CreateEntry(ctx, payload, key)
	if errors.Is(err, apperrors.ErrDuplicateIdempotencyKey) {
		// A concurrent request with the same key won the insert.
		winner, findErr := g.entryRepo.FindEntryByIdempotencyKey(ctx, key)
		if findErr != nil {
			return nil, false, findErr
		}
		return g.replay(ctx, key, winner, payload)
	}
	if err != nil {
		return nil, false, err
	}

	view := g.conversion.Decorate(ctx, []domain.LedgerEntry{*created})[0]
	return &view, false, nil
}

// replay returns the stored entry if payload matches what produced it.
func (g *idempotencyGuard) replay(ctx context.Context, key string, existing *domain.LedgerEntry, payload domain.EntryPayload) (*domain.LedgerEntryView, bool, error) {
	// The account may have been deactivated since; a retry must still replay.
	account, err := g.accounts.Lookup(ctx, payload.Account)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}
	if account == nil || !existing.SameAs(account.AccountID, payload) {
		g.LogWarn(ctx, "Idempotency key reused with different payload",
			slog.String("idempotency_key", key),
			slog.String("entry_id", existing.EntryID))
		return nil, false, fmt.Errorf("%w: key %s", apperrors.ErrIdempotencyConflict, key)
	}

	g.LogInfo(ctx, "Replaying ledger entry for idempotency key",
		slog.String("idempotency_key", key),
		slog.String("entry_id", existing.EntryID))
	view := g.conversion.Decorate(ctx, []domain.LedgerEntry{*existing})[0]
	return &view, true, nil
}
