package domain

import "time"

// PaymentMethod records how a fee payment was received.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodBank     PaymentMethod = "BANK"
	MethodMobile   PaymentMethod = "MOBILE"
	MethodCheque   PaymentMethod = "CHEQUE"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// FeePayment is a single incoming payment applied against a fee's
// installments. IdempotencyKey is unique per organization; replaying the
// same key returns the original payment instead of applying a duplicate.
// Every FeePayment produces exactly one income FinanceTransaction.
type FeePayment struct {
	PaymentID      string        `json:"paymentID"`
	OrganizationID string        `json:"organizationID"`
	StudentID      string        `json:"studentID"`
	FeeID          string        `json:"feeID"`
	AccountID      string        `json:"accountID"`
	AmountMinor    int64         `json:"amountMinor"` // > 0
	PaidOn         time.Time     `json:"paidOn"`
	Method         PaymentMethod `json:"method"`
	IdempotencyKey string        `json:"idempotencyKey"`
	AuditFields

	// Allocations record how the payment was split across installments.
	Allocations []PaymentAllocation `json:"allocations,omitempty"`
}

// PaymentAllocation maps a slice of a payment onto one installment.
// Allocations are owned by the payment.
type PaymentAllocation struct {
	AllocationID  string `json:"allocationID"`
	PaymentID     string `json:"paymentID"`
	InstallmentID string `json:"installmentID"`
	AmountMinor   int64  `json:"amountMinor"` // > 0
}
