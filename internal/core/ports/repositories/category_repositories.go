package repositories

import (
	"context"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// CategoryReader defines read operations for finance categories.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error)

	// ListCategories retrieves categories for an organization, optionally
	// filtered by type (nil means both).
	ListCategories(ctx context.Context, organizationID string, categoryType *domain.CategoryType) ([]domain.FinanceCategory, error)
}

// CategoryWriter defines write operations for finance categories.
type CategoryWriter interface {
	// SaveCategory persists a new category. Returns apperrors.ErrDuplicate
	// when (organization, name, type) already exists.
	SaveCategory(ctx context.Context, category domain.FinanceCategory) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
