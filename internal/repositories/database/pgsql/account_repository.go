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

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.FinanceAccount) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO finance_accounts (account_id, organization_id, name, kind, currency_code, is_active,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrganizationID,
		m.Name,
		m.Kind,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, mapStoreErr(err))
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinanceAccount, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT account_id, organization_id, name, kind, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM finance_accounts
		WHERE account_id = $1;
	`
	var m models.FinanceAccount
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Name,
		&m.Kind,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, mapStoreErr(err))
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string) ([]domain.FinanceAccount, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT account_id, organization_id, name, kind, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM finance_accounts
		WHERE organization_id = $1
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, mapStoreErr(err))
	}
	defer rows.Close()

	var accounts []models.FinanceAccount
	for rows.Next() {
		var m models.FinanceAccount
		if err := rows.Scan(
			&m.AccountID,
			&m.OrganizationID,
			&m.Name,
			&m.Kind,
			&m.CurrencyCode,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating account rows: %w", mapStoreErr(err))
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		UPDATE finance_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, mapStoreErr(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}
