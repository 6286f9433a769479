package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/core/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

type ledgerFixture struct {
	orgID           string
	accountID       string
	categoryID      string
	transactionRepo *MockTransactionRepository
	accountRepo     *MockAccountRepository
	categoryRepo    *MockCategoryRepository
}

func newLedgerFixture() *ledgerFixture {
	return &ledgerFixture{
		orgID:           uuid.NewString(),
		accountID:       uuid.NewString(),
		categoryID:      uuid.NewString(),
		transactionRepo: new(MockTransactionRepository),
		accountRepo:     new(MockAccountRepository),
		categoryRepo:    new(MockCategoryRepository),
	}
}

func (f *ledgerFixture) service() portssvc.LedgerSvcFacade {
	return services.NewLedgerService(f.transactionRepo, services.NewAccountService(f.accountRepo), f.categoryRepo)
}

func (f *ledgerFixture) expectAccount(active bool) {
	f.accountRepo.On("FindAccountByID", mock.Anything, f.accountID).Return(&domain.FinanceAccount{
		AccountID:      f.accountID,
		OrganizationID: f.orgID,
		IsActive:       active,
	}, nil)
}

func (f *ledgerFixture) expectCategory(categoryType domain.CategoryType) {
	f.categoryRepo.On("FindCategoryByID", mock.Anything, f.categoryID).Return(&domain.FinanceCategory{
		CategoryID:     f.categoryID,
		OrganizationID: f.orgID,
		Type:           categoryType,
	}, nil)
}

func recordRequest(f *ledgerFixture, txnType string) dto.RecordTransactionRequest {
	return dto.RecordTransactionRequest{
		AccountID:   f.accountID,
		CategoryID:  f.categoryID,
		Type:        txnType,
		AmountMinor: 2500,
		OccurredOn:  time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description: "Stationery purchase",
	}
}

func TestRecordTransaction_Success(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(true)
	f.expectCategory(domain.CategoryExpense)

	var saved domain.FinanceTransaction
	f.transactionRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.FinanceTransaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.FinanceTransaction)
		}).
		Return(nil)

	txn, err := f.service().RecordTransaction(context.Background(), f.orgID, recordRequest(f, "EXPENSE"), "user-1")
	require.NoError(t, err)

	assert.Equal(t, domain.Expense, txn.Type)
	assert.Equal(t, int64(-2500), txn.SignedAmountMinor())
	assert.Nil(t, saved.SourceRef, "manual entries carry no source reference")
	assert.Equal(t, f.orgID, saved.OrganizationID)
}

func TestRecordTransaction_CategoryTypeMismatch(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(true)
	f.expectCategory(domain.CategoryIncome)

	_, err := f.service().RecordTransaction(context.Background(), f.orgID, recordRequest(f, "EXPENSE"), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	f.transactionRepo.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything)
}

func TestRecordTransaction_InactiveAccountRejected(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(false)

	_, err := f.service().RecordTransaction(context.Background(), f.orgID, recordRequest(f, "EXPENSE"), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRecordTransaction_MissingCategoryIsValidationError(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(true)
	f.categoryRepo.On("FindCategoryByID", mock.Anything, f.categoryID).Return(nil, apperrors.ErrNotFound)

	_, err := f.service().RecordTransaction(context.Background(), f.orgID, recordRequest(f, "EXPENSE"), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListTransactionsByAccount_ClampsLimit(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(true)

	f.transactionRepo.On("ListTransactionsByAccountID", mock.Anything, f.orgID, f.accountID, 100, (*string)(nil)).
		Return([]domain.FinanceTransaction{}, nil, nil)

	resp, err := f.service().ListTransactionsByAccount(context.Background(), f.orgID, f.accountID, dto.ListTransactionsParams{Limit: 5000})
	require.NoError(t, err)
	assert.Empty(t, resp.Transactions)
	assert.Nil(t, resp.NextToken)
	f.transactionRepo.AssertExpectations(t)
}

func TestAccountBalance_DerivedFromTransactions(t *testing.T) {
	f := newLedgerFixture()
	f.expectAccount(true)

	asOf := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	f.transactionRepo.On("SumAccountBalance", mock.Anything, f.orgID, f.accountID, asOf).Return(int64(123450), nil)

	balance, err := f.service().AccountBalance(context.Background(), f.orgID, f.accountID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(123450), balance)
}

func TestAccountBalance_OtherOrganizationLooksMissing(t *testing.T) {
	f := newLedgerFixture()
	f.accountRepo.On("FindAccountByID", mock.Anything, f.accountID).Return(&domain.FinanceAccount{
		AccountID:      f.accountID,
		OrganizationID: "org-other",
		IsActive:       true,
	}, nil)

	_, err := f.service().AccountBalance(context.Background(), f.orgID, f.accountID, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	f.transactionRepo.AssertNotCalled(t, "SumAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
