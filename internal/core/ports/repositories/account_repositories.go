package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// AccountReader defines read operations for finance accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.FinanceAccount, error)

	// ListAccounts retrieves all accounts for an organization.
	ListAccounts(ctx context.Context, organizationID string) ([]domain.FinanceAccount, error)
}

// AccountWriter defines write operations for finance accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.FinanceAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
