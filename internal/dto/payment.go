package dto

import (
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// ApplyPaymentRequest applies an incoming payment against a fee.
// IdempotencyKey makes the request safe to retry.
type ApplyPaymentRequest struct {
	AccountID      string    `json:"accountID" binding:"required,uuid"`
	AmountMinor    int64     `json:"amountMinor" binding:"required,gt=0"`
	PaidOn         time.Time `json:"paidOn" binding:"required"`
	Method         string    `json:"method" binding:"required,oneof=CASH BANK MOBILE CHEQUE TRANSFER"`
	IdempotencyKey string    `json:"idempotencyKey" binding:"required"`
}

// AllocationResponse shows how much of a payment landed on one installment.
type AllocationResponse struct {
	InstallmentID string `json:"installmentID"`
	AmountMinor   int64  `json:"amountMinor"`
}

// PaymentResponse is the API representation of a fee payment.
type PaymentResponse struct {
	PaymentID      string               `json:"paymentID"`
	FeeID          string               `json:"feeID"`
	StudentID      string               `json:"studentID"`
	AccountID      string               `json:"accountID"`
	AmountMinor    int64                `json:"amountMinor"`
	PaidOn         time.Time            `json:"paidOn"`
	Method         string               `json:"method"`
	IdempotencyKey string               `json:"idempotencyKey"`
	Allocations    []AllocationResponse `json:"allocations,omitempty"`
}

// ApplyPaymentResponse is the result of a payment application, including the
// installments the payment touched.
type ApplyPaymentResponse struct {
	Payment             PaymentResponse       `json:"payment"`
	UpdatedInstallments []InstallmentResponse `json:"updatedInstallments"`
	FeeCompleted        bool                  `json:"feeCompleted"`
	Replayed            bool                  `json:"replayed"`
}

// ToPaymentResponse converts a domain payment to the API representation.
func ToPaymentResponse(p *domain.FeePayment) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:      p.PaymentID,
		FeeID:          p.FeeID,
		StudentID:      p.StudentID,
		AccountID:      p.AccountID,
		AmountMinor:    p.AmountMinor,
		PaidOn:         p.PaidOn,
		Method:         string(p.Method),
		IdempotencyKey: p.IdempotencyKey,
	}
	for _, a := range p.Allocations {
		resp.Allocations = append(resp.Allocations, AllocationResponse{
			InstallmentID: a.InstallmentID,
			AmountMinor:   a.AmountMinor,
		})
	}
	return resp
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(ps []domain.FeePayment) []PaymentResponse {
	resp := make([]PaymentResponse, len(ps))
	for i := range ps {
		resp[i] = ToPaymentResponse(&ps[i])
	}
	return resp
}

// PaymentAppliedEvent is emitted to the notification collaborator after a
// payment commits. Delivery failures never roll back the payment.
type PaymentAppliedEvent struct {
	PaymentID      string    `json:"paymentID"`
	OrganizationID string    `json:"organizationID"`
	StudentID      string    `json:"studentID"`
	FeeID          string    `json:"feeID"`
	AmountMinor    int64     `json:"amountMinor"`
	PaidOn         time.Time `json:"paidOn"`
	FeeCompleted   bool      `json:"feeCompleted"`
	OccurredAt     time.Time `json:"occurredAt"`
}
