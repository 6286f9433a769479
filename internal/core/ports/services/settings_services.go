package services

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/dto"
)

// SettingsSvcFacade manages organization-wide finance configuration.
// Settings are loaded per request and handed to the engines as a value,
// never read from process-wide state.
type SettingsSvcFacade interface {
	// GetSettings returns the organization's settings, falling back to
	// defaults when none were saved yet.
	GetSettings(ctx context.Context, organizationID string) (*domain.FinanceSettings, error)

	// UpdateSettings validates and replaces the organization's settings.
	UpdateSettings(ctx context.Context, organizationID string, req dto.UpdateSettingsRequest, userID string) (*domain.FinanceSettings, error)
}
