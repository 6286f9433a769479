package domain

import "time"

// FeeStatus tracks the lifecycle of a student fee basket.
type FeeStatus string

const (
	FeeActive    FeeStatus = "ACTIVE"
	FeeCompleted FeeStatus = "COMPLETED"
	FeeCancelled FeeStatus = "CANCELLED"
)

// InstallmentStatus is derived from paidAmountMinor vs amountMinor; it is
// stored only as a convenience and every write path recomputes it.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "PENDING"
	InstallmentPartial   InstallmentStatus = "PARTIAL"
	InstallmentPaid      InstallmentStatus = "PAID"
	InstallmentCancelled InstallmentStatus = "CANCELLED"
)

// StudentFee is the total amount a student owes for an academic period,
// broken into installments. The fee exclusively owns its installments:
// they are created together and cancelled together, and the installment
// amounts sum to TotalAmountMinor at all times.
type StudentFee struct {
	FeeID            string    `json:"feeID"`
	OrganizationID   string    `json:"organizationID"`
	StudentID        string    `json:"studentID"`
	ClassID          string    `json:"classID"`
	TotalAmountMinor int64     `json:"totalAmountMinor"` // > 0
	InstallmentCount int       `json:"installmentCount"` // >= 1
	AcademicPeriod   string    `json:"academicPeriod"`
	Status           FeeStatus `json:"status"`
	AuditFields

	// Installments are populated on detail reads only.
	Installments []FeeInstallment `json:"installments,omitempty"`
}

// FeeInstallment is one slice of a StudentFee with its own due date.
// 0 <= PaidAmountMinor <= AmountMinor always holds.
type FeeInstallment struct {
	InstallmentID     string            `json:"installmentID"`
	FeeID             string            `json:"feeID"`
	InstallmentNumber int               `json:"installmentNumber"` // 1..N, unique per fee
	DueDate           time.Time         `json:"dueDate"`
	AmountMinor       int64             `json:"amountMinor"` // > 0
	PaidAmountMinor   int64             `json:"paidAmountMinor"`
	Status            InstallmentStatus `json:"status"`
	AuditFields
}

// RemainingMinor returns how much of the installment is still unpaid.
func (i FeeInstallment) RemainingMinor() int64 {
	return i.AmountMinor - i.PaidAmountMinor
}

// IsOpen reports whether the installment can still receive payment.
func (i FeeInstallment) IsOpen() bool {
	return i.Status == InstallmentPending || i.Status == InstallmentPartial
}
