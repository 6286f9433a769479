package repositories

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// SettingsReader defines read operations for finance settings.
type SettingsReader interface {
	// FindSettings retrieves the finance settings row for an organization.
	// Returns apperrors.ErrNotFound when none has been saved yet.
	FindSettings(ctx context.Context, organizationID string) (*domain.FinanceSettings, error)
}

// SettingsWriter defines write operations for finance settings.
type SettingsWriter interface {
	// SaveSettings inserts or replaces the single settings row for the
	// organization.
	SaveSettings(ctx context.Context, settings domain.FinanceSettings) error
}

// SettingsRepositoryFacade combines all settings repository interfaces.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
