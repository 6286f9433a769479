package services

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/dto"
)

// AccountSvcFacade manages finance accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.FinanceAccount, error)
	GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error)
	ListAccounts(ctx context.Context, organizationID string) ([]domain.FinanceAccount, error)
	DeactivateAccount(ctx context.Context, organizationID, accountID, userID string) error
}

// CategorySvcFacade manages transaction categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, userID string) (*domain.FinanceCategory, error)
	ListCategories(ctx context.Context, organizationID string, categoryType *domain.CategoryType) ([]domain.FinanceCategory, error)
}

// LedgerSvcFacade records manual money movements and projects balances.
type LedgerSvcFacade interface {
	// RecordTransaction validates and persists a manual income/expense entry.
	RecordTransaction(ctx context.Context, organizationID string, req dto.RecordTransactionRequest, userID string) (*domain.FinanceTransaction, error)

	// ListTransactionsByAccount returns a cursor-paginated ledger view.
	ListTransactionsByAccount(ctx context.Context, organizationID, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// AccountBalance computes income minus expense over the account's
	// transactions with occurredOn <= asOf. Always derived, never cached.
	AccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time) (int64, error)

	// OrganizationBalance sums AccountBalance over all active accounts.
	OrganizationBalance(ctx context.Context, organizationID string, asOf time.Time) (int64, error)
}
