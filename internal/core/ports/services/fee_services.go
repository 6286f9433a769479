package services

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/dto"
)

// FeeSvcFacade manages student fee baskets and their installment schedules.
type FeeSvcFacade interface {
	// CreateStudentFee derives the installment schedule from the fee total
	// and the organization's settings, then persists fee and installments
	// atomically.
	CreateStudentFee(ctx context.Context, organizationID string, req dto.CreateFeeRequest, userID string) (*domain.StudentFee, error)

	// GetFee returns a fee with its installments.
	GetFee(ctx context.Context, organizationID, feeID string) (*domain.StudentFee, error)

	// ListFeesByStudent returns all fees of a student, newest first.
	ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error)

	// CancelFee marks the fee cancelled and its not-fully-paid installments
	// cancelled; cancelled installments leave overdue consideration.
	CancelFee(ctx context.Context, organizationID, feeID, userID string) error
}

// PaymentSvcFacade applies payments against fee installments.
type PaymentSvcFacade interface {
	// ApplyPayment applies the payment oldest-installment-first as one
	// atomic unit and emits a payment-applied event on success. Requests
	// replaying a known idempotency key return the stored result.
	ApplyPayment(ctx context.Context, organizationID, feeID string, req dto.ApplyPaymentRequest, userID string) (*dto.ApplyPaymentResponse, error)

	// ListPaymentsByFee returns the payment history of a fee, newest first.
	ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error)
}
