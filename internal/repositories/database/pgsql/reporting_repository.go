package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetIncomeExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (int64, int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(amount_minor) FILTER (WHERE type = 'INCOME'), 0),
		       COALESCE(SUM(amount_minor) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM finance_transactions
		WHERE organization_id = $1 AND occurred_on >= $2 AND occurred_on <= $3;
	`
	var income, expense int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, from, to).Scan(&income, &expense); err != nil {
		return 0, 0, fmt.Errorf("failed to sum income/expense totals: %w", mapStoreErr(err))
	}
	return income, expense, nil
}

// GetOutstandingReceivables sums the unpaid remainder of every live
// installment. Cancelled installments and cancelled fees drop out.
func (r *PgxReportingRepository) GetOutstandingReceivables(ctx context.Context, organizationID string) (int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(i.amount_minor - i.paid_amount_minor), 0)
		FROM fee_installments i
		JOIN student_fees f ON f.fee_id = i.fee_id
		WHERE f.organization_id = $1
		  AND f.status != 'CANCELLED'
		  AND i.status != 'CANCELLED';
	`
	var outstanding int64
	if err := r.Pool.QueryRow(ctx, query, organizationID).Scan(&outstanding); err != nil {
		return 0, fmt.Errorf("failed to sum outstanding receivables: %w", mapStoreErr(err))
	}
	return outstanding, nil
}

func (r *PgxReportingRepository) GetMonthlyTotals(ctx context.Context, organizationID string, from, to time.Time) ([]domain.MonthlyTrendPoint, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT EXTRACT(YEAR FROM occurred_on)::int,
		       EXTRACT(MONTH FROM occurred_on)::int,
		       COALESCE(SUM(amount_minor) FILTER (WHERE type = 'INCOME'), 0),
		       COALESCE(SUM(amount_minor) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM finance_transactions
		WHERE organization_id = $1 AND occurred_on >= $2 AND occurred_on <= $3
		GROUP BY 1, 2
		ORDER BY 1, 2;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", mapStoreErr(err))
	}
	defer rows.Close()

	var points []domain.MonthlyTrendPoint
	for rows.Next() {
		var p domain.MonthlyTrendPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.IncomeMinor, &p.ExpenseMinor); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating monthly total rows: %w", mapStoreErr(err))
	}
	return points, nil
}

func (r *PgxReportingRepository) GetCategoryTotals(ctx context.Context, organizationID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotal, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(t.amount_minor), 0) AS total
		FROM finance_transactions t
		JOIN finance_categories c ON c.category_id = t.category_id
		WHERE t.organization_id = $1 AND t.type = $2 AND t.occurred_on >= $3 AND t.occurred_on <= $4
		GROUP BY c.category_id, c.name
		ORDER BY total DESC, c.name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, string(categoryType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", mapStoreErr(err))
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var t domain.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.AmountMinor); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating category total rows: %w", mapStoreErr(err))
	}
	return totals, nil
}

const overdueFilter = `
	f.organization_id = $1
	AND f.status = 'ACTIVE'
	AND i.status IN ('PENDING', 'PARTIAL')
	AND i.due_date < $2
`

func (r *PgxReportingRepository) ListOverdueInstallments(ctx context.Context, organizationID string, today time.Time) ([]domain.OverdueInstallment, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT i.installment_id, i.fee_id, f.student_id, i.installment_number, i.due_date,
		       i.amount_minor, i.paid_amount_minor, i.status
		FROM fee_installments i
		JOIN student_fees f ON f.fee_id = i.fee_id
		WHERE ` + overdueFilter + `
		ORDER BY i.due_date ASC, i.installment_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue installments: %w", mapStoreErr(err))
	}
	defer rows.Close()

	var overdue []domain.OverdueInstallment
	for rows.Next() {
		var o domain.OverdueInstallment
		if err := rows.Scan(
			&o.InstallmentID,
			&o.FeeID,
			&o.StudentID,
			&o.InstallmentNumber,
			&o.DueDate,
			&o.AmountMinor,
			&o.PaidAmountMinor,
			&o.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overdue installment row: %w", err)
		}
		overdue = append(overdue, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating overdue installment rows: %w", mapStoreErr(err))
	}
	return overdue, nil
}

func (r *PgxReportingRepository) CountOverdueInstallments(ctx context.Context, organizationID string, today time.Time) (int, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*)
		FROM fee_installments i
		JOIN student_fees f ON f.fee_id = i.fee_id
		WHERE ` + overdueFilter + `;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, today).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overdue installments: %w", mapStoreErr(err))
	}
	return count, nil
}
