package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
	"github.com/edusuite/school_finance_app/internal/middleware"
)

type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	feeRepo     portsrepo.FeeRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	notifier    portssvc.PaymentNotifier
}

// NewPaymentService creates a new payment service. notifier may be nil when
// no notification transport is configured.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, feeRepo portsrepo.FeeRepositoryFacade, accountSvc portssvc.AccountSvcFacade, notifier portssvc.PaymentNotifier) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		feeRepo:     feeRepo,
		accountSvc:  accountSvc,
		notifier:    notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ApplyPayment(ctx context.Context, organizationID, feeID string, req dto.ApplyPaymentRequest, userID string) (*dto.ApplyPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find fee", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		}
		return nil, err
	}
	if fee.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("fee not found")
	}
	// The repository re-checks fee status under the row lock; this early
	// check only produces a friendlier failure without opening a transaction.
	switch fee.Status {
	case domain.FeeCancelled:
		return nil, fmt.Errorf("%w: fee %s is cancelled", apperrors.ErrConflict, feeID)
	case domain.FeeCompleted:
		return nil, fmt.Errorf("%w: fee %s is already fully paid", apperrors.ErrConflict, feeID)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	now := time.Now()
	payment := domain.FeePayment{
		PaymentID:      uuid.NewString(),
		OrganizationID: organizationID,
		StudentID:      fee.StudentID,
		FeeID:          feeID,
		AccountID:      req.AccountID,
		AmountMinor:    req.AmountMinor,
		PaidOn:         req.PaidOn,
		Method:         domain.PaymentMethod(req.Method),
		IdempotencyKey: req.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	result, err := s.paymentRepo.ApplyPayment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payment rejected", slog.String("fee_id", feeID), slog.Int64("amount_minor", req.AmountMinor), slog.String("reason", err.Error()))
		} else {
			logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		}
		return nil, err
	}

	if result.Replayed {
		logger.Info("Payment replayed from idempotency key",
			slog.String("payment_id", result.Payment.PaymentID),
			slog.String("fee_id", feeID),
		)
	} else {
		logger.Info("Payment applied",
			slog.String("payment_id", result.Payment.PaymentID),
			slog.String("fee_id", feeID),
			slog.Int64("amount_minor", result.Payment.AmountMinor),
			slog.Bool("fee_completed", result.FeeCompleted),
		)
		s.notifyApplied(ctx, result)
	}

	return &dto.ApplyPaymentResponse{
		Payment:             dto.ToPaymentResponse(&result.Payment),
		UpdatedInstallments: dto.ToInstallmentResponses(result.UpdatedInstallments),
		FeeCompleted:        result.FeeCompleted,
		Replayed:            result.Replayed,
	}, nil
}

func (s *paymentService) ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find fee", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		}
		return nil, err
	}
	if fee.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("fee not found")
	}

	payments, err := s.paymentRepo.ListPaymentsByFee(ctx, organizationID, feeID)
	if err != nil {
		logger.Error("Failed to list payments", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		return nil, err
	}
	return payments, nil
}

// notifyApplied emits the payment-applied event. The payment is already
// committed at this point, so delivery failures are logged and swallowed.
func (s *paymentService) notifyApplied(ctx context.Context, result *portsrepo.PaymentApplyResult) {
	if s.notifier == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	event := dto.PaymentAppliedEvent{
		PaymentID:      result.Payment.PaymentID,
		OrganizationID: result.Payment.OrganizationID,
		StudentID:      result.Payment.StudentID,
		FeeID:          result.Payment.FeeID,
		AmountMinor:    result.Payment.AmountMinor,
		PaidOn:         result.Payment.PaidOn,
		FeeCompleted:   result.FeeCompleted,
		OccurredAt:     time.Now(),
	}
	if err := s.notifier.PaymentApplied(ctx, event); err != nil {
		logger.Error("Failed to publish payment applied event",
			slog.String("error", err.Error()),
			slog.String("payment_id", event.PaymentID),
		)
	}
}
