package models

import "time"

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

// FinanceTransaction maps the finance_transactions table.
type FinanceTransaction struct {
	TransactionID  string          `db:"transaction_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      string          `db:"account_id"`
	CategoryID     string          `db:"category_id"`
	Type           TransactionType `db:"type"`
	AmountMinor    int64           `db:"amount_minor"`
	OccurredOn     time.Time       `db:"occurred_on"`
	Description    string          `db:"description"`
	SourceRef      *string         `db:"source_ref"`
	AuditFields
}
