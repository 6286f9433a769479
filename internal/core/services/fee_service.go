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
	"github.com/edusuite/school_finance_app/internal/utils/accounting"
)

type feeService struct {
	feeRepo     portsrepo.FeeRepositoryFacade
	settingsSvc portssvc.SettingsSvcFacade
}

// NewFeeService creates a new fee service.
func NewFeeService(feeRepo portsrepo.FeeRepositoryFacade, settingsSvc portssvc.SettingsSvcFacade) portssvc.FeeSvcFacade {
	return &feeService{
		feeRepo:     feeRepo,
		settingsSvc: settingsSvc,
	}
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

func (s *feeService) CreateStudentFee(ctx context.Context, organizationID string, req dto.CreateFeeRequest, userID string) (*domain.StudentFee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	period, ok := settings.PeriodByName(req.AcademicPeriod)
	if !ok {
		return nil, fmt.Errorf("%w: academic period %q is not configured", apperrors.ErrValidation, req.AcademicPeriod)
	}

	count := req.InstallmentCount
	if count == 0 {
		count = settings.DefaultInstallments
	}

	// The schedule starts in the month the period starts, on the
	// organization's payment due day.
	lines, err := accounting.BuildSchedule(req.TotalAmountMinor, count, period.StartDate, settings.PaymentDueDay)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	fee := domain.StudentFee{
		FeeID:            uuid.NewString(),
		OrganizationID:   organizationID,
		StudentID:        req.StudentID,
		ClassID:          req.ClassID,
		TotalAmountMinor: req.TotalAmountMinor,
		InstallmentCount: count,
		AcademicPeriod:   req.AcademicPeriod,
		Status:           domain.FeeActive,
		AuditFields:      audit,
	}

	installments := make([]domain.FeeInstallment, len(lines))
	for i, line := range lines {
		installments[i] = domain.FeeInstallment{
			InstallmentID:     uuid.NewString(),
			FeeID:             fee.FeeID,
			InstallmentNumber: line.InstallmentNumber,
			DueDate:           line.DueDate,
			AmountMinor:       line.AmountMinor,
			PaidAmountMinor:   0,
			Status:            domain.InstallmentPending,
			AuditFields:       audit,
		}
	}

	if err := s.feeRepo.SaveFee(ctx, fee, installments); err != nil {
		logger.Error("Failed to save fee", slog.String("error", err.Error()), slog.String("fee_id", fee.FeeID))
		return nil, err
	}

	fee.Installments = installments
	logger.Info("Student fee created",
		slog.String("fee_id", fee.FeeID),
		slog.String("student_id", fee.StudentID),
		slog.Int("installments", len(installments)),
	)
	return &fee, nil
}

func (s *feeService) GetFee(ctx context.Context, organizationID, feeID string) (*domain.StudentFee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fee, err := s.findFeeScoped(ctx, organizationID, feeID)
	if err != nil {
		return nil, err
	}

	installments, err := s.feeRepo.FindInstallmentsByFeeID(ctx, feeID)
	if err != nil {
		logger.Error("Failed to load installments", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		return nil, err
	}
	fee.Installments = installments
	return fee, nil
}

func (s *feeService) ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fees, err := s.feeRepo.ListFeesByStudent(ctx, organizationID, studentID)
	if err != nil {
		logger.Error("Failed to list fees by student", slog.String("error", err.Error()), slog.String("student_id", studentID))
		return nil, err
	}
	return fees, nil
}

func (s *feeService) CancelFee(ctx context.Context, organizationID, feeID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	fee, err := s.findFeeScoped(ctx, organizationID, feeID)
	if err != nil {
		return err
	}
	switch fee.Status {
	case domain.FeeCancelled:
		// Cancelling twice is a no-op.
		return nil
	case domain.FeeCompleted:
		return fmt.Errorf("%w: fee %s is already completed", apperrors.ErrConflict, feeID)
	}

	if err := s.feeRepo.CancelFee(ctx, feeID, userID, time.Now()); err != nil {
		logger.Error("Failed to cancel fee", slog.String("error", err.Error()), slog.String("fee_id", feeID))
		return err
	}

	logger.Info("Fee cancelled", slog.String("fee_id", feeID))
	return nil
}

// findFeeScoped loads a fee and hides fees of other organizations behind
// ErrNotFound.
func (s *feeService) findFeeScoped(ctx context.Context, organizationID, feeID string) (*domain.StudentFee, error) {
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
	return fee, nil
}
