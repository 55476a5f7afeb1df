package services

import (
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The activity log comes first: every other service records into it.
	container.Activity = NewActivityLogService(repos.ActivityRepo)
	withActivity := WithActivityLogger(container.Activity)

	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo, withActivity)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, withActivity)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.JournalRepo)
	container.User = NewUserService(repos.UserRepo, withActivity)
	container.Token = NewTokenService(cfg)

	return container
}
