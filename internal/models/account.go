package models

// AccountKind mirrors domain.AccountKind at the persistence layer.
type AccountKind string

// FinanceAccount maps the finance_accounts table. There is deliberately no
// balance column; balances are projections over finance_transactions.
type FinanceAccount struct {
	AccountID      string      `db:"account_id"`
	OrganizationID string      `db:"organization_id"`
	Name           string      `db:"name"`
	Kind           AccountKind `db:"kind"`
	CurrencyCode   string      `db:"currency_code"`
	IsActive       bool        `db:"is_active"`
	AuditFields
}
