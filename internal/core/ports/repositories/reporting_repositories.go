package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries backing the
// reporting service. Every query runs in a single consistent snapshot and
// never mutates state.
type ReportingRepository interface {
	// GetIncomeExpenseTotals sums transaction amounts per type over the range.
	GetIncomeExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (incomeMinor, expenseMinor int64, err error)

	// GetOutstandingReceivables sums (amount - paid) over non-cancelled
	// installments of non-cancelled fees.
	GetOutstandingReceivables(ctx context.Context, organizationID string) (int64, error)

	// GetMonthlyTotals returns per-month income/expense sums within the
	// range. Months without activity are absent; the service zero-fills.
	GetMonthlyTotals(ctx context.Context, organizationID string, from, to time.Time) ([]domain.MonthlyTrendPoint, error)

	// GetCategoryTotals sums transaction amounts per category for one type
	// over the range, ordered by amount descending then name ascending.
	// Percentages are computed by the service.
	GetCategoryTotals(ctx context.Context, organizationID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotal, error)

	// ListOverdueInstallments returns open installments with dueDate before
	// today, ordered by due date ascending.
	ListOverdueInstallments(ctx context.Context, organizationID string, today time.Time) ([]domain.OverdueInstallment, error)

	// CountOverdueInstallments counts the overdue set without materializing it.
	CountOverdueInstallments(ctx context.Context, organizationID string, today time.Time) (int, error)
}
