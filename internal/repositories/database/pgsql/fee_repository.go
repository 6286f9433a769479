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

const feeColumns = `fee_id, organization_id, student_id, class_id, total_amount_minor, installment_count,
	       academic_period, status,
	       created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, fee_id, installment_number, due_date, amount_minor, paid_amount_minor, status,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxFeeRepository struct {
	BaseRepository
}

func newPgxFeeRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.FeeRepositoryFacade {
	return &PgxFeeRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

func scanFee(row pgx.Row) (models.StudentFee, error) {
	var m models.StudentFee
	err := row.Scan(
		&m.FeeID,
		&m.OrganizationID,
		&m.StudentID,
		&m.ClassID,
		&m.TotalAmountMinor,
		&m.InstallmentCount,
		&m.AcademicPeriod,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanInstallment(row pgx.Row) (models.FeeInstallment, error) {
	var m models.FeeInstallment
	err := row.Scan(
		&m.InstallmentID,
		&m.FeeID,
		&m.InstallmentNumber,
		&m.DueDate,
		&m.AmountMinor,
		&m.PaidAmountMinor,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFee persists the fee and its installment rows in one transaction. The
// installments always sum to the fee total; persisting them together keeps
// that invariant visible to every reader.
func (r *PgxFeeRepository) SaveFee(ctx context.Context, fee domain.StudentFee, installments []domain.FeeInstallment) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelFee(fee)
	feeQuery := `
		INSERT INTO student_fees (fee_id, organization_id, student_id, class_id, total_amount_minor, installment_count,
		                          academic_period, status,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, feeQuery,
		m.FeeID,
		m.OrganizationID,
		m.StudentID,
		m.ClassID,
		m.TotalAmountMinor,
		m.InstallmentCount,
		m.AcademicPeriod,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: fee with ID %s already exists", apperrors.ErrDuplicate, m.FeeID)
		}
		return fmt.Errorf("failed to save fee %s: %w", m.FeeID, mapStoreErr(err))
	}

	instQuery := `
		INSERT INTO fee_installments (installment_id, fee_id, installment_number, due_date, amount_minor, paid_amount_minor, status,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, inst := range installments {
		mi := mapping.ToModelInstallment(inst)
		batch.Queue(instQuery,
			mi.InstallmentID,
			mi.FeeID,
			mi.InstallmentNumber,
			mi.DueDate,
			mi.AmountMinor,
			mi.PaidAmountMinor,
			mi.Status,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range installments {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save installments for fee %s: %w", m.FeeID, mapStoreErr(err))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close installment batch for fee %s: %w", m.FeeID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + feeColumns + ` FROM student_fees WHERE fee_id = $1;`
	m, err := scanFee(r.Pool.QueryRow(ctx, query, feeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee %s not found", feeID))
		}
		return nil, fmt.Errorf("failed to find fee %s: %w", feeID, mapStoreErr(err))
	}

	fee := mapping.ToDomainFee(m)
	return &fee, nil
}

func (r *PgxFeeRepository) FindInstallmentsByFeeID(ctx context.Context, feeID string) ([]domain.FeeInstallment, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + installmentColumns + `
		FROM fee_installments
		WHERE fee_id = $1
		ORDER BY installment_number ASC;`
	rows, err := r.Pool.Query(ctx, query, feeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments for fee %s: %w", feeID, mapStoreErr(err))
	}
	defer rows.Close()

	var installments []models.FeeInstallment
	for rows.Next() {
		m, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating installment rows: %w", mapStoreErr(err))
	}

	return mapping.ToDomainInstallmentSlice(installments), nil
}

func (r *PgxFeeRepository) ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + feeColumns + `
		FROM student_fees
		WHERE organization_id = $1 AND student_id = $2
		ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, organizationID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees for student %s: %w", studentID, mapStoreErr(err))
	}
	defer rows.Close()

	var fees []models.StudentFee
	for rows.Next() {
		m, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee row: %w", err)
		}
		fees = append(fees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating fee rows: %w", mapStoreErr(err))
	}

	return mapping.ToDomainFeeSlice(fees), nil
}

// CancelFee locks the fee row, then cancels the fee and every installment
// that is not yet fully paid. Paid installments keep their history.
func (r *PgxFeeRepository) CancelFee(ctx context.Context, feeID string, userID string, now time.Time) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.FeeStatus
	err = tx.QueryRow(ctx, `SELECT status FROM student_fees WHERE fee_id = $1 FOR UPDATE;`, feeID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("fee %s not found", feeID))
		}
		return fmt.Errorf("failed to lock fee %s: %w", feeID, mapStoreErr(err))
	}
	if status == models.FeeStatus(domain.FeeCancelled) {
		// Another request got there first.
		return r.Commit(ctx, tx)
	}
	if status == models.FeeStatus(domain.FeeCompleted) {
		return fmt.Errorf("%w: fee %s is already completed", apperrors.ErrConflict, feeID)
	}

	_, err = tx.Exec(ctx, `
		UPDATE student_fees
		SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
		WHERE fee_id = $1;
	`, feeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel fee %s: %w", feeID, mapStoreErr(err))
	}

	_, err = tx.Exec(ctx, `
		UPDATE fee_installments
		SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
		WHERE fee_id = $1 AND paid_amount_minor < amount_minor AND status != 'CANCELLED';
	`, feeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel installments for fee %s: %w", feeID, mapStoreErr(err))
	}

	return r.Commit(ctx, tx)
}
