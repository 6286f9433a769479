package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// FeeReader defines read operations for student fees.
type FeeReader interface {
	// FindFeeByID retrieves a fee without its installments.
	FindFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error)

	// FindInstallmentsByFeeID retrieves all installments of a fee ordered by
	// installment number.
	FindInstallmentsByFeeID(ctx context.Context, feeID string) ([]domain.FeeInstallment, error)

	// ListFeesByStudent retrieves all fees of a student within an
	// organization, newest first.
	ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error)
}

// FeeWriter defines write operations for student fees.
type FeeWriter interface {
	// SaveFee persists a fee together with its installment rows in a single
	// transaction. The fee owns its installments.
	SaveFee(ctx context.Context, fee domain.StudentFee, installments []domain.FeeInstallment) error

	// CancelFee marks the fee cancelled and every not-fully-paid installment
	// cancelled, atomically, locking the fee row first.
	CancelFee(ctx context.Context, feeID string, userID string, now time.Time) error
}

// FeeRepositoryFacade combines all fee repository interfaces.
type FeeRepositoryFacade interface {
	FeeReader
	FeeWriter
}
