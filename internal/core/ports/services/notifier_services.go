package services

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/dto"
)

// PaymentNotifier delivers payment-applied events to the external
// notification collaborator. Implementations must be safe for concurrent
// use; delivery failure is reported but never rolls back the payment.
type PaymentNotifier interface {
	PaymentApplied(ctx context.Context, event dto.PaymentAppliedEvent) error
}
