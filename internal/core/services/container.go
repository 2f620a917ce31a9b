package services

import (
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Conversion = NewConversionService(repos.Rates)
	container.Account = NewAccountService(repos.AccountRepo)
	container.Entry = NewEntryService(repos.EntryRepo, container.Account, container.Conversion)
	container.Idempotency = NewIdempotencyGuard(container.Entry, repos.EntryRepo, container.Account, container.Conversion)
	container.Summary = NewSummaryService(repos.SummaryRepo)

	return container
}
