package services

// ServiceContainer holds all the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Settings  SettingsSvcFacade
	Account   AccountSvcFacade
	Category  CategorySvcFacade
	Ledger    LedgerSvcFacade
	Fee       FeeSvcFacade
	Payment   PaymentSvcFacade
	Reporting ReportingSvcFacade
}
