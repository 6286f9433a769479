package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	SettingsRepo    SettingsRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	FeeRepo         FeeRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	ReportingRepo   ReportingRepository
}
