package repositories

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// PaymentApplyResult is the outcome of applying a payment.
type PaymentApplyResult struct {
	Payment             domain.FeePayment
	UpdatedInstallments []domain.FeeInstallment
	FeeCompleted        bool
	// Replayed is true when the idempotency key had already been used and
	// the stored payment was returned without re-application.
	Replayed bool
}

// PaymentReader defines read operations for fee payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its allocations.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error)

	// ListPaymentsByFee retrieves all payments applied to a fee, newest first.
	ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error)
}

// PaymentWriter defines the transactional payment write.
type PaymentWriter interface {
	// ApplyPayment executes the whole payment application as one database
	// transaction: it locks the fee row (per-fee serialization), reads the
	// open installments under that lock, allocates oldest-first, and writes
	// the installment updates, the payment with its allocations, the
	// mirrored income ledger transaction and the fee status transition as
	// an all-or-nothing unit.
	//
	// Overpayment fails with apperrors.ErrConflict and writes nothing. If
	// payment.IdempotencyKey was already used in the organization, the
	// stored payment is returned with Replayed=true and no state changes.
	ApplyPayment(ctx context.Context, payment domain.FeePayment) (*PaymentApplyResult, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
