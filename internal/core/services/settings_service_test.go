package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/core/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

func TestGetSettings_FallsBackToDefaults(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := services.NewSettingsService(repo)

	repo.On("FindSettings", mock.Anything, "org-1").Return(nil, apperrors.ErrNotFound)

	settings, err := svc.GetSettings(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, "org-1", settings.OrganizationID)
	assert.GreaterOrEqual(t, settings.DefaultInstallments, 1)
	assert.GreaterOrEqual(t, settings.PaymentDueDay, 1)
	assert.LessOrEqual(t, settings.PaymentDueDay, 28)
	assert.Len(t, settings.CurrencyCode, 3)
	// Defaults are not persisted.
	repo.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
}

func TestGetSettings_ReturnsStoredSettings(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := services.NewSettingsService(repo)

	stored := &domain.FinanceSettings{
		OrganizationID:      "org-1",
		CurrencyCode:        "KES",
		DefaultInstallments: 4,
		PaymentDueDay:       10,
	}
	repo.On("FindSettings", mock.Anything, "org-1").Return(stored, nil)

	settings, err := svc.GetSettings(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, stored, settings)
}

func TestUpdateSettings(t *testing.T) {
	validReq := func() dto.UpdateSettingsRequest {
		return dto.UpdateSettingsRequest{
			CurrencyCode:        "UGX",
			DefaultInstallments: 3,
			PaymentDueDay:       5,
			AcademicPeriods: []dto.AcademicPeriodDTO{
				{
					Name:      "Term 1",
					StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
				},
				{
					Name:      "Term 2",
					StartDate: time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
				},
			},
		}
	}

	t.Run("valid settings are saved", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := services.NewSettingsService(repo)
		repo.On("SaveSettings", mock.Anything, mock.AnythingOfType("domain.FinanceSettings")).Return(nil)

		settings, err := svc.UpdateSettings(context.Background(), "org-1", validReq(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "org-1", settings.OrganizationID)
		assert.Len(t, settings.AcademicPeriods, 2)
		repo.AssertExpectations(t)
	})

	t.Run("overlapping periods are rejected", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := services.NewSettingsService(repo)

		req := validReq()
		req.AcademicPeriods[1].StartDate = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.UpdateSettings(context.Background(), "org-1", req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
	})

	t.Run("period ending before it starts is rejected", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := services.NewSettingsService(repo)

		req := validReq()
		req.AcademicPeriods[0].EndDate = req.AcademicPeriods[0].StartDate

		_, err := svc.UpdateSettings(context.Background(), "org-1", req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("duplicate period names are rejected", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := services.NewSettingsService(repo)

		req := validReq()
		req.AcademicPeriods[1].Name = "Term 1"

		_, err := svc.UpdateSettings(context.Background(), "org-1", req, "user-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
