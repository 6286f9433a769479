package domain

// AccountKind identifies the physical form of a money container.
type AccountKind string

const (
	AccountCash AccountKind = "CASH"
	AccountBank AccountKind = "BANK"
	AccountPOS  AccountKind = "POS"
)

// FinanceAccount represents a named money container (cash box, bank account,
// POS terminal) within an organization. The balance is never stored; it is a
// projection over the account's transactions (see LedgerService).
type FinanceAccount struct {
	AccountID      string      `json:"accountID"`      // Primary key (UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations (NON-NULL)
	Name           string      `json:"name"`
	Kind           AccountKind `json:"kind"`
	CurrencyCode   string      `json:"currencyCode"` // Fixed at creation
	IsActive       bool        `json:"isActive"`
	AuditFields
}
