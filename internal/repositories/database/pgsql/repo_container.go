package pgsql

import (
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx repositories. The rate provider is not
// database-backed and is set by the caller.
func NewRepositoryProvider(dbPool DBPool, rates portsrepo.RateProvider) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		EntryRepo:   newPgxLedgerEntryRepository(dbPool),
		SummaryRepo: newPgxSummaryRepository(dbPool),
		Rates:       rates,
	}
}
