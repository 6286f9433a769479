package models

import "time"

// PaymentMethod mirrors domain.PaymentMethod at the persistence layer.
type PaymentMethod string

// FeePayment maps the fee_payments table.
// (organization_id, idempotency_key) carries a unique constraint.
type FeePayment struct {
	PaymentID      string        `db:"payment_id"`
	OrganizationID string        `db:"organization_id"`
	StudentID      string        `db:"student_id"`
	FeeID          string        `db:"fee_id"`
	AccountID      string        `db:"account_id"`
	AmountMinor    int64         `db:"amount_minor"`
	PaidOn         time.Time     `db:"paid_on"`
	Method         PaymentMethod `db:"method"`
	IdempotencyKey string        `db:"idempotency_key"`
	AuditFields
}

// PaymentAllocation maps the payment_allocations table.
type PaymentAllocation struct {
	AllocationID  string `db:"allocation_id"`
	PaymentID     string `db:"payment_id"`
	InstallmentID string `db:"installment_id"`
	AmountMinor   int64  `db:"amount_minor"`
}
