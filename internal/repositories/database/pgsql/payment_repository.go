package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	"github.com/edusuite/school_finance_app/internal/models"
	"github.com/edusuite/school_finance_app/internal/utils/accounting"
	"github.com/edusuite/school_finance_app/internal/utils/mapping"
)

const paymentColumns = `payment_id, organization_id, student_id, fee_id, account_id, amount_minor,
	       paid_on, method, idempotency_key,
	       created_at, created_by, last_updated_at, last_updated_by`

// feeIncomeCategoryName is the income category every fee payment is booked
// under. It is created on first use per organization.
const feeIncomeCategoryName = "School Fees"

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.FeePayment, error) {
	var m models.FeePayment
	err := row.Scan(
		&m.PaymentID,
		&m.OrganizationID,
		&m.StudentID,
		&m.FeeID,
		&m.AccountID,
		&m.AmountMinor,
		&m.PaidOn,
		&m.Method,
		&m.IdempotencyKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ApplyPayment runs the whole payment application in one transaction.
//
// The fee row lock serializes all payments against the same fee, so the
// installment reads, the allocation and the writes below happen against a
// stable snapshot. Everything either commits together or not at all.
func (r *PgxPaymentRepository) ApplyPayment(ctx context.Context, payment domain.FeePayment) (*portsrepo.PaymentApplyResult, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the fee first. Idempotency replays also serialize on this lock,
	// so the same key can never be applied twice.
	var feeStatus models.FeeStatus
	err = tx.QueryRow(ctx, `SELECT status FROM student_fees WHERE fee_id = $1 FOR UPDATE;`, payment.FeeID).Scan(&feeStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("fee %s not found", payment.FeeID))
		}
		return nil, fmt.Errorf("failed to lock fee %s: %w", payment.FeeID, mapStoreErr(err))
	}

	if stored, err := r.findStoredPayment(ctx, tx, payment.OrganizationID, payment.IdempotencyKey); err != nil {
		return nil, err
	} else if stored != nil {
		// A key replayed against a different fee is a client bug, not a
		// retry; replaying it would report the wrong fee's state.
		if stored.FeeID != payment.FeeID {
			return nil, fmt.Errorf("%w: idempotency key %s was already used for fee %s", apperrors.ErrConflict, payment.IdempotencyKey, stored.FeeID)
		}
		return &portsrepo.PaymentApplyResult{
			Payment:      *stored,
			FeeCompleted: feeStatus == models.FeeStatus(domain.FeeCompleted),
			Replayed:     true,
		}, nil
	}

	switch feeStatus {
	case models.FeeStatus(domain.FeeCancelled):
		return nil, fmt.Errorf("%w: fee %s is cancelled", apperrors.ErrConflict, payment.FeeID)
	case models.FeeStatus(domain.FeeCompleted):
		return nil, fmt.Errorf("%w: fee %s is already fully paid", apperrors.ErrConflict, payment.FeeID)
	}

	installments, err := r.lockInstallments(ctx, tx, payment.FeeID)
	if err != nil {
		return nil, err
	}

	updates, err := accounting.AllocatePayment(installments, payment.AmountMinor)
	if err != nil {
		return nil, err
	}

	if err := r.writeInstallmentUpdates(ctx, tx, updates, payment.CreatedBy, payment.LastUpdatedAt); err != nil {
		return nil, err
	}

	if err := r.insertPayment(ctx, tx, payment); err != nil {
		return nil, err
	}

	allocations, err := r.insertAllocations(ctx, tx, payment.PaymentID, updates)
	if err != nil {
		return nil, err
	}

	if err := r.insertLedgerEntry(ctx, tx, payment); err != nil {
		return nil, err
	}

	completed := accounting.FeeCompleted(installments, updates)
	if completed {
		_, err = tx.Exec(ctx, `
			UPDATE student_fees
			SET status = 'COMPLETED', last_updated_at = $2, last_updated_by = $3
			WHERE fee_id = $1;
		`, payment.FeeID, payment.LastUpdatedAt, payment.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to complete fee %s: %w", payment.FeeID, mapStoreErr(err))
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	payment.Allocations = allocations
	return &portsrepo.PaymentApplyResult{
		Payment:             payment,
		UpdatedInstallments: mergeUpdates(installments, updates),
		FeeCompleted:        completed,
	}, nil
}

// findStoredPayment looks up a previous application of the same idempotency
// key within the organization.
func (r *PgxPaymentRepository) findStoredPayment(ctx context.Context, tx pgx.Tx, organizationID, idempotencyKey string) (*domain.FeePayment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM fee_payments
		WHERE organization_id = $1 AND idempotency_key = $2;`
	m, err := scanPayment(tx.QueryRow(ctx, query, organizationID, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency key: %w", mapStoreErr(err))
	}

	stored := mapping.ToDomainPayment(m)
	allocations, err := r.loadAllocations(ctx, tx, stored.PaymentID)
	if err != nil {
		return nil, err
	}
	stored.Allocations = allocations
	return &stored, nil
}

func (r *PgxPaymentRepository) lockInstallments(ctx context.Context, tx pgx.Tx, feeID string) ([]domain.FeeInstallment, error) {
	query := `SELECT ` + installmentColumns + `
		FROM fee_installments
		WHERE fee_id = $1
		ORDER BY installment_number ASC
		FOR UPDATE;`
	rows, err := tx.Query(ctx, query, feeID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock installments for fee %s: %w", feeID, mapStoreErr(err))
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

func (r *PgxPaymentRepository) writeInstallmentUpdates(ctx context.Context, tx pgx.Tx, updates []accounting.InstallmentUpdate, userID string, now time.Time) error {
	query := `
		UPDATE fee_installments
		SET paid_amount_minor = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE installment_id = $1;
	`
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.InstallmentID, u.PaidAmountMinor, string(u.Status), now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	for range updates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to update installment: %w", mapStoreErr(err))
		}
	}
	return br.Close()
}

func (r *PgxPaymentRepository) insertPayment(ctx context.Context, tx pgx.Tx, payment domain.FeePayment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO fee_payments (payment_id, organization_id, student_id, fee_id, account_id, amount_minor,
		                          paid_on, method, idempotency_key,
		                          created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.OrganizationID,
		m.StudentID,
		m.FeeID,
		m.AccountID,
		m.AmountMinor,
		m.PaidOn,
		m.Method,
		m.IdempotencyKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: idempotency key %s already used", apperrors.ErrDuplicate, m.IdempotencyKey)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, mapStoreErr(err))
	}
	return nil
}

func (r *PgxPaymentRepository) insertAllocations(ctx context.Context, tx pgx.Tx, paymentID string, updates []accounting.InstallmentUpdate) ([]domain.PaymentAllocation, error) {
	query := `
		INSERT INTO payment_allocations (allocation_id, payment_id, installment_id, amount_minor)
		VALUES ($1, $2, $3, $4);
	`
	allocations := make([]domain.PaymentAllocation, len(updates))
	batch := &pgx.Batch{}
	for i, u := range updates {
		allocations[i] = domain.PaymentAllocation{
			AllocationID:  uuid.NewString(),
			PaymentID:     paymentID,
			InstallmentID: u.InstallmentID,
			AmountMinor:   u.AllocatedMinor,
		}
		batch.Queue(query, allocations[i].AllocationID, paymentID, u.InstallmentID, u.AllocatedMinor)
	}
	br := tx.SendBatch(ctx, batch)
	for range updates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, fmt.Errorf("failed to save allocation: %w", mapStoreErr(err))
		}
	}
	if err := br.Close(); err != nil {
		return nil, err
	}
	return allocations, nil
}

// insertLedgerEntry books the payment as an income transaction on the
// receiving account, creating the fee income category on first use.
func (r *PgxPaymentRepository) insertLedgerEntry(ctx context.Context, tx pgx.Tx, payment domain.FeePayment) error {
	var categoryID string
	err := tx.QueryRow(ctx, `
		SELECT category_id FROM finance_categories
		WHERE organization_id = $1 AND name = $2 AND type = 'INCOME';
	`, payment.OrganizationID, feeIncomeCategoryName).Scan(&categoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		categoryID = uuid.NewString()
		_, err = tx.Exec(ctx, `
			INSERT INTO finance_categories (category_id, organization_id, type, name, icon,
			                                created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, 'INCOME', $3, '', $4, $5, $6, $7);
		`, categoryID, payment.OrganizationID, feeIncomeCategoryName,
			payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve fee income category: %w", mapStoreErr(err))
	}

	sourceRef := payment.PaymentID
	_, err = tx.Exec(ctx, `
		INSERT INTO finance_transactions (transaction_id, organization_id, account_id, category_id, type, amount_minor,
		                                  occurred_on, description, source_ref,
		                                  created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, 'INCOME', $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		uuid.NewString(),
		payment.OrganizationID,
		payment.AccountID,
		categoryID,
		payment.AmountMinor,
		payment.PaidOn,
		fmt.Sprintf("Fee payment for student %s", payment.StudentID),
		sourceRef,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry for payment %s: %w", payment.PaymentID, mapStoreErr(err))
	}
	return nil
}

// mergeUpdates applies the allocation results to the locked installment
// snapshot and returns only the touched installments, in schedule order.
func mergeUpdates(installments []domain.FeeInstallment, updates []accounting.InstallmentUpdate) []domain.FeeInstallment {
	byID := make(map[string]accounting.InstallmentUpdate, len(updates))
	for _, u := range updates {
		byID[u.InstallmentID] = u
	}

	var touched []domain.FeeInstallment
	for _, inst := range installments {
		if u, ok := byID[inst.InstallmentID]; ok {
			inst.PaidAmountMinor = u.PaidAmountMinor
			inst.Status = u.Status
			touched = append(touched, inst)
		}
	}
	return touched
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + paymentColumns + ` FROM fee_payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, mapStoreErr(err))
	}

	payment := mapping.ToDomainPayment(m)
	allocations, err := r.loadPoolAllocations(ctx, payment.PaymentID)
	if err != nil {
		return nil, err
	}
	payment.Allocations = allocations
	return &payment, nil
}

func (r *PgxPaymentRepository) ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + paymentColumns + `
		FROM fee_payments
		WHERE organization_id = $1 AND fee_id = $2
		ORDER BY paid_on DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, organizationID, feeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for fee %s: %w", feeID, mapStoreErr(err))
	}
	defer rows.Close()

	var payments []models.FeePayment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating payment rows: %w", mapStoreErr(err))
	}

	result := mapping.ToDomainPaymentSlice(payments)
	for i := range result {
		allocations, err := r.loadPoolAllocations(ctx, result[i].PaymentID)
		if err != nil {
			return nil, err
		}
		result[i].Allocations = allocations
	}
	return result, nil
}

func (r *PgxPaymentRepository) loadAllocations(ctx context.Context, tx pgx.Tx, paymentID string) ([]domain.PaymentAllocation, error) {
	return scanAllocations(tx.Query(ctx, allocationsByPaymentQuery, paymentID))
}

func (r *PgxPaymentRepository) loadPoolAllocations(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return scanAllocations(r.Pool.Query(ctx, allocationsByPaymentQuery, paymentID))
}

const allocationsByPaymentQuery = `
	SELECT allocation_id, payment_id, installment_id, amount_minor
	FROM payment_allocations
	WHERE payment_id = $1
	ORDER BY allocation_id;
`

func scanAllocations(rows pgx.Rows, err error) ([]domain.PaymentAllocation, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", mapStoreErr(err))
	}
	defer rows.Close()

	var allocations []domain.PaymentAllocation
	for rows.Next() {
		var m models.PaymentAllocation
		if err := rows.Scan(&m.AllocationID, &m.PaymentID, &m.InstallmentID, &m.AmountMinor); err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating allocation rows: %w", mapStoreErr(err))
	}
	return allocations, nil
}
