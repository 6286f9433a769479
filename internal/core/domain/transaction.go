package domain

import "time"

// TransactionType indicates the direction of a money movement.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// FinanceTransaction is the ledger-visible record of a single money movement
// against an account. Amounts are always positive integer minor units; the
// sign is implied by Type. SourceRef links the transaction back to the
// FeePayment that produced it, when there is one.
type FinanceTransaction struct {
	TransactionID  string          `json:"transactionID"`
	OrganizationID string          `json:"organizationID"`
	AccountID      string          `json:"accountID"`
	CategoryID     string          `json:"categoryID"`
	Type           TransactionType `json:"type"`
	AmountMinor    int64           `json:"amountMinor"` // > 0
	OccurredOn     time.Time       `json:"occurredOn"`
	Description    string          `json:"description"`
	SourceRef      *string         `json:"sourceRef,omitempty"` // FeePayment ID, nil for manual entries
	AuditFields
}

// SignedAmountMinor returns the amount with the sign implied by Type:
// positive for income, negative for expense.
func (t FinanceTransaction) SignedAmountMinor() int64 {
	if t.Type == Expense {
		return -t.AmountMinor
	}
	return t.AmountMinor
}
