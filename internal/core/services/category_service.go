package services

import (
	"context"
	"errors"
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

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, userID string) (*domain.FinanceCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.FinanceCategory{
		CategoryID:     uuid.NewString(),
		OrganizationID: organizationID,
		Type:           domain.CategoryType(req.Type),
		Name:           req.Name,
		Icon:           req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate category rejected", slog.String("name", req.Name), slog.String("type", req.Type))
		} else {
			logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		}
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, organizationID string, categoryType *domain.CategoryType) ([]domain.FinanceCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categories, err := s.categoryRepo.ListCategories(ctx, organizationID, categoryType)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}
	return categories, nil
}
