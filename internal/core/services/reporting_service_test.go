package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/core/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

func TestFinancialSummary(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)
	orgID := "org-1"

	repo.On("GetIncomeExpenseTotals", mock.Anything, orgID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(int64(500000), int64(120000), nil)
	repo.On("GetOutstandingReceivables", mock.Anything, orgID).Return(int64(75000), nil)
	repo.On("CountOverdueInstallments", mock.Anything, orgID, mock.AnythingOfType("time.Time")).Return(2, nil)

	summary, err := svc.FinancialSummary(context.Background(), orgID, dto.ReportRange{})
	require.NoError(t, err)

	assert.Equal(t, int64(500000), summary.TotalIncomeMinor)
	assert.Equal(t, int64(120000), summary.TotalExpenseMinor)
	assert.Equal(t, int64(380000), summary.NetMinor)
	assert.Equal(t, int64(75000), summary.OutstandingMinor)
	assert.Equal(t, 2, summary.OverdueInstallmentsNum)
}

func TestFinancialSummary_EmptyDataIsZeroed(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	repo.On("GetIncomeExpenseTotals", mock.Anything, "org-1", mock.Anything, mock.Anything).Return(int64(0), int64(0), nil)
	repo.On("GetOutstandingReceivables", mock.Anything, "org-1").Return(int64(0), nil)
	repo.On("CountOverdueInstallments", mock.Anything, "org-1", mock.Anything).Return(0, nil)

	summary, err := svc.FinancialSummary(context.Background(), "org-1", dto.ReportRange{})
	require.NoError(t, err)
	assert.Zero(t, summary.NetMinor)
	assert.Zero(t, summary.OverdueInstallmentsNum)
}

func TestMonthlyTrends_ZeroFillsIdleMonths(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	rng := dto.ReportRange{
		From: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
	}
	// Only November and February have activity.
	repo.On("GetMonthlyTotals", mock.Anything, "org-1", rng.From, rng.To).Return([]domain.MonthlyTrendPoint{
		{Year: 2025, Month: 11, IncomeMinor: 1000, ExpenseMinor: 200},
		{Year: 2026, Month: 2, IncomeMinor: 4000},
	}, nil)

	points, err := svc.MonthlyTrends(context.Background(), "org-1", rng)
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, domain.MonthlyTrendPoint{Year: 2025, Month: 11, IncomeMinor: 1000, ExpenseMinor: 200}, points[0])
	assert.Equal(t, domain.MonthlyTrendPoint{Year: 2025, Month: 12}, points[1])
	assert.Equal(t, domain.MonthlyTrendPoint{Year: 2026, Month: 1}, points[2])
	assert.Equal(t, domain.MonthlyTrendPoint{Year: 2026, Month: 2, IncomeMinor: 4000}, points[3])
}

func TestMonthlyTrends_DefaultWindowIsTwelveMonths(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	repo.On("GetMonthlyTotals", mock.Anything, "org-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.MonthlyTrendPoint{}, nil)

	points, err := svc.MonthlyTrends(context.Background(), "org-1", dto.ReportRange{})
	require.NoError(t, err)
	assert.Len(t, points, 12)
	for _, p := range points {
		assert.Zero(t, p.IncomeMinor)
		assert.Zero(t, p.ExpenseMinor)
	}
}

func TestCategoryDistribution_Percentages(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	repo.On("GetCategoryTotals", mock.Anything, "org-1", domain.CategoryExpense, mock.Anything, mock.Anything).
		Return([]domain.CategoryTotal{
			{CategoryID: "c1", CategoryName: "Salaries", AmountMinor: 75000},
			{CategoryID: "c2", CategoryName: "Utilities", AmountMinor: 25000},
		}, nil)

	totals, err := svc.CategoryDistribution(context.Background(), "org-1", domain.CategoryExpense, dto.ReportRange{})
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.InDelta(t, 75.0, totals[0].Percentage, 0.001)
	assert.InDelta(t, 25.0, totals[1].Percentage, 0.001)
}

func TestCategoryDistribution_ZeroTotalYieldsZeroPercentages(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	repo.On("GetCategoryTotals", mock.Anything, "org-1", domain.CategoryIncome, mock.Anything, mock.Anything).
		Return([]domain.CategoryTotal{}, nil)

	totals, err := svc.CategoryDistribution(context.Background(), "org-1", domain.CategoryIncome, dto.ReportRange{})
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestOverdueInstallments(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	repo.On("ListOverdueInstallments", mock.Anything, "org-1", today).Return([]domain.OverdueInstallment{
		{InstallmentID: "i1", DueDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), AmountMinor: 1000, PaidAmountMinor: 200},
		{InstallmentID: "i2", DueDate: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC), AmountMinor: 1000},
	}, nil)

	rows, err := svc.OverdueInstallments(context.Background(), "org-1", today)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].DueDate.Before(rows[1].DueDate))
}
