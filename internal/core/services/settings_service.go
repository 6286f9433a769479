package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
	"github.com/edusuite/school_finance_app/internal/middleware"
)

// Fallback configuration used until an organization saves its own settings.
const (
	defaultCurrencyCode  = "UGX"
	defaultInstallmentsN = 3
	defaultPaymentDueDay = 5
)

type settingsService struct {
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, organizationID string) (*domain.FinanceSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.settingsRepo.FindSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Nothing saved yet, hand back the defaults without persisting
			// them. The first UpdateSettings creates the row.
			return defaultSettings(organizationID), nil
		}
		logger.Error("Failed to find finance settings", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, organizationID string, req dto.UpdateSettingsRequest, userID string) (*domain.FinanceSettings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	periods := make([]domain.AcademicPeriod, len(req.AcademicPeriods))
	for i, p := range req.AcademicPeriods {
		periods[i] = domain.AcademicPeriod{Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate}
	}
	if err := validateAcademicPeriods(periods); err != nil {
		return nil, err
	}

	now := time.Now()
	settings := domain.FinanceSettings{
		OrganizationID:      organizationID,
		CurrencyCode:        req.CurrencyCode,
		DefaultInstallments: req.DefaultInstallments,
		PaymentDueDay:       req.PaymentDueDay,
		AcademicPeriods:     periods,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		logger.Error("Failed to save finance settings", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	logger.Info("Finance settings updated", slog.String("organization_id", organizationID))
	return &settings, nil
}

// validateAcademicPeriods enforces that periods are well formed, in ascending
// start order and non-overlapping.
func validateAcademicPeriods(periods []domain.AcademicPeriod) error {
	seen := make(map[string]struct{}, len(periods))
	for i, p := range periods {
		if !p.EndDate.After(p.StartDate) {
			return fmt.Errorf("%w: academic period %q must end after it starts", apperrors.ErrValidation, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate academic period name %q", apperrors.ErrValidation, p.Name)
		}
		seen[p.Name] = struct{}{}
		if i > 0 {
			prev := periods[i-1]
			if p.StartDate.Before(prev.EndDate) {
				return fmt.Errorf("%w: academic period %q overlaps %q", apperrors.ErrValidation, p.Name, prev.Name)
			}
		}
	}
	return nil
}

func defaultSettings(organizationID string) *domain.FinanceSettings {
	return &domain.FinanceSettings{
		OrganizationID:      organizationID,
		CurrencyCode:        defaultCurrencyCode,
		DefaultInstallments: defaultInstallmentsN,
		PaymentDueDay:       defaultPaymentDueDay,
	}
}
