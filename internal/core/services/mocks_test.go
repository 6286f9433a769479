package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
)

// --- Mock SettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindSettings(ctx context.Context, organizationID string) (*domain.FinanceSettings, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceSettings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.FinanceSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FinanceAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string) ([]domain.FinanceAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinanceAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.FinanceAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinanceCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, organizationID string, categoryType *domain.CategoryType) ([]domain.FinanceCategory, error) {
	args := m.Called(ctx, organizationID, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinanceCategory), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.FinanceCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinanceTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.FinanceTransaction, *string, error) {
	args := m.Called(ctx, organizationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.FinanceTransaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SumAccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, organizationID, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumOrganizationBalance(ctx context.Context, organizationID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, organizationID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.FinanceTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock FeeRepository ---

type MockFeeRepository struct {
	mock.Mock
}

var _ portsrepo.FeeRepositoryFacade = (*MockFeeRepository)(nil)

func (m *MockFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}

func (m *MockFeeRepository) FindInstallmentsByFeeID(ctx context.Context, feeID string) ([]domain.FeeInstallment, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeInstallment), args.Error(1)
}

func (m *MockFeeRepository) ListFeesByStudent(ctx context.Context, organizationID, studentID string) ([]domain.StudentFee, error) {
	args := m.Called(ctx, organizationID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}

func (m *MockFeeRepository) SaveFee(ctx context.Context, fee domain.StudentFee, installments []domain.FeeInstallment) error {
	args := m.Called(ctx, fee, installments)
	return args.Error(0)
}

func (m *MockFeeRepository) CancelFee(ctx context.Context, feeID string, userID string, now time.Time) error {
	args := m.Called(ctx, feeID, userID, now)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByFee(ctx context.Context, organizationID, feeID string) ([]domain.FeePayment, error) {
	args := m.Called(ctx, organizationID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

func (m *MockPaymentRepository) ApplyPayment(ctx context.Context, payment domain.FeePayment) (*portsrepo.PaymentApplyResult, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.PaymentApplyResult), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetIncomeExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (int64, int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportingRepository) GetOutstandingReceivables(ctx context.Context, organizationID string) (int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, organizationID string, from, to time.Time) ([]domain.MonthlyTrendPoint, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTrendPoint), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, organizationID string, categoryType domain.CategoryType, from, to time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, organizationID, categoryType, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) ListOverdueInstallments(ctx context.Context, organizationID string, today time.Time) ([]domain.OverdueInstallment, error) {
	args := m.Called(ctx, organizationID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueInstallment), args.Error(1)
}

func (m *MockReportingRepository) CountOverdueInstallments(ctx context.Context, organizationID string, today time.Time) (int, error) {
	args := m.Called(ctx, organizationID, today)
	return args.Get(0).(int), args.Error(1)
}

// --- Mock PaymentNotifier ---

type MockPaymentNotifier struct {
	mock.Mock
}

var _ portssvc.PaymentNotifier = (*MockPaymentNotifier)(nil)

func (m *MockPaymentNotifier) PaymentApplied(ctx context.Context, event dto.PaymentAppliedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
