package services

import (
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies. notifier may be nil when no notification transport is
// configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.PaymentNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first, the fee engine depends on it.
	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo, container.Account, repos.CategoryRepo)
	container.Fee = NewFeeService(repos.FeeRepo, container.Settings)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.FeeRepo, container.Account, notifier)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
