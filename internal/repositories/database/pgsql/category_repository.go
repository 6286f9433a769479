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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.FinanceCategory) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO finance_categories (category_id, organization_id, type, name, icon,
		                                created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.OrganizationID,
		m.Type,
		m.Name,
		m.Icon,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: category %q of type %s already exists", apperrors.ErrDuplicate, m.Name, m.Type)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, mapStoreErr(err))
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT category_id, organization_id, type, name, icon,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM finance_categories
		WHERE category_id = $1;
	`
	var m models.FinanceCategory
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID,
		&m.OrganizationID,
		&m.Type,
		&m.Name,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("category %s not found", categoryID))
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, mapStoreErr(err))
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, organizationID string, categoryType *domain.CategoryType) ([]domain.FinanceCategory, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT category_id, organization_id, type, name, icon,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM finance_categories
		WHERE organization_id = $1
	`
	args := []interface{}{organizationID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY type ASC, name ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for organization %s: %w", organizationID, mapStoreErr(err))
	}
	defer rows.Close()

	var categories []models.FinanceCategory
	for rows.Next() {
		var m models.FinanceCategory
		if err := rows.Scan(
			&m.CategoryID,
			&m.OrganizationID,
			&m.Type,
			&m.Name,
			&m.Icon,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating category rows: %w", mapStoreErr(err))
	}

	return mapping.ToDomainCategorySlice(categories), nil
}
