package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the database that enforces the same
// uniqueness and version constraints as the SQL schema.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	entries  map[string]domain.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]domain.Account{},
		entries:  map[string]domain.LedgerEntry{},
	}
}

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Name == account.Name {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, account.Name)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *memStore) UpdateAccount(_ context.Context, accountID string, changes domain.UpdateAccountInput) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	if changes.Name != nil {
		for id, a := range s.accounts {
			if id != accountID && a.Name == *changes.Name {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, *changes.Name)
			}
		}
		account.Name = *changes.Name
	}
	if changes.IsActive != nil {
		account.IsActive = *changes.IsActive
	}
	s.accounts[accountID] = account
	return &account, nil
}

func (s *memStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &a, nil
}

func (s *memStore) FindAccountByName(_ context.Context, name string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Name == name {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account " + name)
}

func (s *memStore) ListActiveAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0)
	for _, a := range s.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) SaveEntry(_ context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[entry.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account " + entry.AccountID)
	}
	if !a.IsActive {
		return fmt.Errorf("%w: %s", apperrors.ErrInactiveAccount, a.Name)
	}
	for _, e := range s.entries {
		if e.IdempotencyKey == entry.IdempotencyKey {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateIdempotencyKey, entry.IdempotencyKey)
		}
	}
	entry.AccountName = a.Name
	// TIMESTAMPTZ keeps microseconds.
	entry.Date = entry.Date.Truncate(time.Microsecond)
	entry.CreatedAt = entry.CreatedAt.Truncate(time.Microsecond)
	entry.UpdatedAt = entry.UpdatedAt.Truncate(time.Microsecond)
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *memStore) FindEntryByID(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("entry " + entryID)
	}
	return &e, nil
}

func (s *memStore) FindEntryByIdempotencyKey(_ context.Context, key string) (*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.IdempotencyKey == key {
			return &e, nil
		}
	}
	return nil, apperrors.NewNotFoundError("idempotency key " + key)
}

func (s *memStore) UpdateEntry(_ context.Context, entry domain.LedgerEntry, expectedVersion int, now time.Time) (*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[entry.EntryID]
	if !ok || current.IsDeleted {
		return nil, apperrors.NewNotFoundError("entry " + entry.EntryID)
	}
	if current.Version != expectedVersion {
		return nil, apperrors.ErrVersionConflict
	}
	current.Amount = entry.Amount
	current.Description = entry.Description
	current.Version++
	current.UpdatedAt = now
	s.entries[entry.EntryID] = current
	return &current, nil
}

func (s *memStore) SoftDeleteEntry(_ context.Context, entryID string, expectedVersion int, now time.Time) (*domain.DeletedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[entryID]
	if !ok || current.IsDeleted {
		return nil, apperrors.NewNotFoundError("entry " + entryID)
	}
	if current.Version != expectedVersion {
		return nil, apperrors.ErrVersionConflict
	}
	current.IsDeleted = true
	current.Version++
	current.UpdatedAt = now
	s.entries[entryID] = current
	return &domain.DeletedEntry{EntryID: entryID, IsDeleted: true, Version: current.Version, UpdatedAt: now}, nil
}

func (s *memStore) matching(f domain.EntryFilter) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, 0)
	for _, e := range s.entries {
		switch {
		case e.IsDeleted,
			f.AccountName != "" && s.accounts[e.AccountID].Name != f.AccountName,
			f.Currency != "" && e.Currency != f.Currency,
			f.EntryType != "" && e.EntryType != f.EntryType,
			f.StartDate != nil && e.Date.Before(*f.StartDate),
			f.EndDate != nil && e.Date.After(*f.EndDate):
			continue
		}
		e.AccountName = s.accounts[e.AccountID].Name
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].EntryID > out[j].EntryID
	})
	return out
}

func (s *memStore) ListEntries(_ context.Context, f domain.EntryFilter) (*domain.EntryPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.matching(f)
	page := &domain.EntryPage{Entries: all, Total: len(all)}
	if f.Limit > 0 && len(all) > f.Limit {
		page.Entries = all[:f.Limit]
	}
	return page, nil
}

func (s *memStore) TotalsByEntryType(_ context.Context, f domain.EntryFilter) ([]domain.EntryTypeTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byType := map[domain.EntryType]*domain.EntryTypeTotal{}
	for _, e := range s.matching(f) {
		t, ok := byType[e.EntryType]
		if !ok {
			t = &domain.EntryTypeTotal{EntryType: e.EntryType, Total: decimal.Zero}
			byType[e.EntryType] = t
		}
		t.Count++
		t.Total = t.Total.Add(e.Amount)
	}
	out := make([]domain.EntryTypeTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	return out, nil
}
