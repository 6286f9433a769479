package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	"github.com/edusuite/school_finance_app/internal/models"
	"github.com/edusuite/school_finance_app/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettings(ctx context.Context, organizationID string) (*domain.FinanceSettings, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT organization_id, currency_code, default_installments, payment_due_day, academic_periods,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM finance_settings
		WHERE organization_id = $1;
	`
	var m models.FinanceSettings
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.CurrencyCode,
		&m.DefaultInstallments,
		&m.PaymentDueDay,
		&m.AcademicPeriods,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("finance settings for organization %s not found", organizationID))
		}
		return nil, fmt.Errorf("failed to find finance settings for organization %s: %w", organizationID, mapStoreErr(err))
	}

	settings, err := mapping.ToDomainSettings(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode finance settings for organization %s: %w", organizationID, err)
	}
	return &settings, nil
}

// SaveSettings upserts the single settings row per organization.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.FinanceSettings) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	m, err := mapping.ToModelSettings(settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO finance_settings (organization_id, currency_code, default_installments, payment_due_day, academic_periods,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (organization_id) DO UPDATE SET
			currency_code        = EXCLUDED.currency_code,
			default_installments = EXCLUDED.default_installments,
			payment_due_day      = EXCLUDED.payment_due_day,
			academic_periods     = EXCLUDED.academic_periods,
			last_updated_at      = EXCLUDED.last_updated_at,
			last_updated_by      = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.CurrencyCode,
		m.DefaultInstallments,
		m.PaymentDueDay,
		m.AcademicPeriods,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save finance settings for organization %s: %w", m.OrganizationID, mapStoreErr(err))
	}
	return nil
}
