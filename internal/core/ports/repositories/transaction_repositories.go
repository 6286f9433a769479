package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinanceTransaction, error)

	// ListTransactionsByAccountID retrieves a cursor-paginated list of
	// transactions for an account, newest first.
	ListTransactionsByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.FinanceTransaction, *string, error)

	// SumAccountBalance computes income minus expense over all transactions
	// on the account with occurred_on <= asOf. The balance is never stored.
	SumAccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time) (int64, error)

	// SumOrganizationBalance computes the balance sum over all active
	// accounts of the organization as of the given date.
	SumOrganizationBalance(ctx context.Context, organizationID string, asOf time.Time) (int64, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// SaveTransaction persists a manual ledger transaction.
	SaveTransaction(ctx context.Context, txn domain.FinanceTransaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
