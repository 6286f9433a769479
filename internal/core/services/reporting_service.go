package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
	"github.com/edusuite/school_finance_app/internal/middleware"
)

// trendDefaultMonths is the window used when the caller gives no range.
const trendDefaultMonths = 12

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) FinancialSummary(ctx context.Context, organizationID string, rng dto.ReportRange) (*domain.FinancialSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := normalizeRange(rng)
	income, expense, err := s.reportingRepo.GetIncomeExpenseTotals(ctx, organizationID, from, to)
	if err != nil {
		logger.Error("Failed to compute income/expense totals", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	outstanding, err := s.reportingRepo.GetOutstandingReceivables(ctx, organizationID)
	if err != nil {
		logger.Error("Failed to compute outstanding receivables", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	overdue, err := s.reportingRepo.CountOverdueInstallments(ctx, organizationID, time.Now())
	if err != nil {
		logger.Error("Failed to count overdue installments", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	return &domain.FinancialSummary{
		TotalIncomeMinor:       income,
		TotalExpenseMinor:      expense,
		NetMinor:               income - expense,
		OutstandingMinor:       outstanding,
		OverdueInstallmentsNum: overdue,
	}, nil
}

func (s *reportingService) MonthlyTrends(ctx context.Context, organizationID string, rng dto.ReportRange) ([]domain.MonthlyTrendPoint, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := normalizeTrendRange(rng)
	points, err := s.reportingRepo.GetMonthlyTotals(ctx, organizationID, from, to)
	if err != nil {
		logger.Error("Failed to compute monthly totals", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	return zeroFillMonths(points, from, to), nil
}

func (s *reportingService) CategoryDistribution(ctx context.Context, organizationID string, categoryType domain.CategoryType, rng dto.ReportRange) ([]domain.CategoryTotal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := normalizeRange(rng)
	totals, err := s.reportingRepo.GetCategoryTotals(ctx, organizationID, categoryType, from, to)
	if err != nil {
		logger.Error("Failed to compute category totals", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}

	var grandTotal int64
	for _, t := range totals {
		grandTotal += t.AmountMinor
	}
	for i := range totals {
		totals[i].Percentage = percentage(totals[i].AmountMinor, grandTotal)
	}
	return totals, nil
}

func (s *reportingService) OverdueInstallments(ctx context.Context, organizationID string, today time.Time) ([]domain.OverdueInstallment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.ListOverdueInstallments(ctx, organizationID, today)
	if err != nil {
		logger.Error("Failed to list overdue installments", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, err
	}
	return rows, nil
}

// normalizeRange fills in the open ends of a report range: the Unix epoch on
// the left and now on the right.
func normalizeRange(rng dto.ReportRange) (time.Time, time.Time) {
	from := rng.From
	to := rng.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	return from, to
}

// normalizeTrendRange is like normalizeRange but bounds the left end, since
// the trends report zero-fills every month in the range.
func normalizeTrendRange(rng dto.ReportRange) (time.Time, time.Time) {
	to := rng.To
	if to.IsZero() {
		to = time.Now()
	}
	from := rng.From
	if from.IsZero() {
		from = to.AddDate(0, -(trendDefaultMonths - 1), 0)
	}
	return from, to
}

// zeroFillMonths expands sparse per-month totals into one point per calendar
// month between from and to inclusive, in chronological order.
func zeroFillMonths(points []domain.MonthlyTrendPoint, from, to time.Time) []domain.MonthlyTrendPoint {
	byMonth := make(map[[2]int]domain.MonthlyTrendPoint, len(points))
	for _, p := range points {
		byMonth[[2]int{p.Year, p.Month}] = p
	}

	var filled []domain.MonthlyTrendPoint
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		key := [2]int{cursor.Year(), int(cursor.Month())}
		if p, ok := byMonth[key]; ok {
			filled = append(filled, p)
		} else {
			filled = append(filled, domain.MonthlyTrendPoint{Year: key[0], Month: key[1]})
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return filled
}

// percentage returns amount's share of total in percent, rounded to two
// decimals. A zero total yields zero for every row.
func percentage(amount, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(amount)/float64(total)*10000) / 100
}
