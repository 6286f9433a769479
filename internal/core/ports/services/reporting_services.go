package services

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/dto"
)

// ReportingSvcFacade computes read-only financial reports. Empty data yields
// zeroed aggregates, never errors.
type ReportingSvcFacade interface {
	// FinancialSummary returns totals, net, outstanding receivables and the
	// overdue count for the optional range.
	FinancialSummary(ctx context.Context, organizationID string, rng dto.ReportRange) (*domain.FinancialSummary, error)

	// MonthlyTrends buckets transactions by calendar month; every month in
	// the range appears, zero-filled, in chronological order.
	MonthlyTrends(ctx context.Context, organizationID string, rng dto.ReportRange) ([]domain.MonthlyTrendPoint, error)

	// CategoryDistribution returns per-category totals with percentages for
	// one transaction type, sorted by amount descending then name ascending.
	CategoryDistribution(ctx context.Context, organizationID string, categoryType domain.CategoryType, rng dto.ReportRange) ([]domain.CategoryTotal, error)

	// OverdueInstallments returns open installments due before today,
	// computed at query time, sorted by due date ascending.
	OverdueInstallments(ctx context.Context, organizationID string, today time.Time) ([]domain.OverdueInstallment, error)
}
