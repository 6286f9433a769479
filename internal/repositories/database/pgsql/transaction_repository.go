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
	"github.com/edusuite/school_finance_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, organization_id, account_id, category_id, type, amount_minor,
	       occurred_on, description, source_ref,
	       created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: NewBaseRepository(pool, timeout)}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.FinanceTransaction, error) {
	var m models.FinanceTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.OrganizationID,
		&m.AccountID,
		&m.CategoryID,
		&m.Type,
		&m.AmountMinor,
		&m.OccurredOn,
		&m.Description,
		&m.SourceRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.FinanceTransaction) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO finance_transactions (transaction_id, organization_id, account_id, category_id, type, amount_minor,
		                                  occurred_on, description, source_ref,
		                                  created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.OrganizationID,
		m.AccountID,
		m.CategoryID,
		m.Type,
		m.AmountMinor,
		m.OccurredOn,
		m.Description,
		m.SourceRef,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, mapStoreErr(err))
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinanceTransaction, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM finance_transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, mapStoreErr(err))
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccountID returns a page of transactions newest first,
// using an (occurred_on, created_at) cursor for stable ordering.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.FinanceTransaction, *string, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + `
		FROM finance_transactions
		WHERE organization_id = $1 AND account_id = $2`
	args := []interface{}{organizationID, accountID}

	if nextToken != nil && *nextToken != "" {
		lastOccurredOn, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (occurred_on, created_at) < ($3, $4)`
		args = append(args, lastOccurredOn, lastCreatedAt)
	}

	query += fmt.Sprintf(` ORDER BY occurred_on DESC, created_at DESC LIMIT %d;`, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, mapStoreErr(err))
	}
	defer rows.Close()

	var page []models.FinanceTransaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed while iterating transaction rows: %w", mapStoreErr(err))
	}

	var newNextToken *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.OccurredOn, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(page), newNextToken, nil
}

// SumAccountBalance projects the balance from the transaction history. The
// balance is never stored.
func (r *PgxTransactionRepository) SumAccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time) (int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount_minor ELSE -amount_minor END), 0)
		FROM finance_transactions
		WHERE organization_id = $1 AND account_id = $2 AND occurred_on <= $3;
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, accountID, asOf).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to sum balance for account %s: %w", accountID, mapStoreErr(err))
	}
	return balance, nil
}

// SumOrganizationBalance sums the projected balances of all active accounts.
func (r *PgxTransactionRepository) SumOrganizationBalance(ctx context.Context, organizationID string, asOf time.Time) (int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	query := `
		SELECT COALESCE(SUM(CASE WHEN t.type = 'INCOME' THEN t.amount_minor ELSE -t.amount_minor END), 0)
		FROM finance_transactions t
		JOIN finance_accounts a ON a.account_id = t.account_id
		WHERE t.organization_id = $1 AND a.is_active AND t.occurred_on <= $2;
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, asOf).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to sum balance for organization %s: %w", organizationID, mapStoreErr(err))
	}
	return balance, nil
}
