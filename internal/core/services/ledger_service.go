package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_app/internal/core/ports/services"
	"github.com/edusuite/school_finance_app/internal/dto"
	"github.com/edusuite/school_finance_app/internal/middleware"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 100
)

type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
		accountSvc:      accountSvc,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordTransaction(ctx context.Context, organizationID string, req dto.RecordTransactionRequest, userID string) (*domain.FinanceTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, req.CategoryID)
		}
		logger.Error("Failed to find category", slog.String("error", err.Error()), slog.String("category_id", req.CategoryID))
		return nil, err
	}
	if category.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, req.CategoryID)
	}
	// An INCOME entry must carry an INCOME category, same for EXPENSE.
	if string(category.Type) != req.Type {
		return nil, fmt.Errorf("%w: category type %s does not match transaction type %s", apperrors.ErrValidation, category.Type, req.Type)
	}

	now := time.Now()
	txn := domain.FinanceTransaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      req.AccountID,
		CategoryID:     req.CategoryID,
		Type:           domain.TransactionType(req.Type),
		AmountMinor:    req.AmountMinor,
		OccurredOn:     req.OccurredOn,
		Description:    req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int64("amount_minor", txn.AmountMinor),
	)
	return &txn, nil
}

func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, organizationID, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Account lookup doubles as the organization scope check.
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccountID(ctx, organizationID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *ledgerService) AccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return 0, err
	}

	balance, err := s.transactionRepo.SumAccountBalance(ctx, organizationID, accountID, asOf)
	if err != nil {
		logger.Error("Failed to sum account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return 0, err
	}
	return balance, nil
}

func (s *ledgerService) OrganizationBalance(ctx context.Context, organizationID string, asOf time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.transactionRepo.SumOrganizationBalance(ctx, organizationID, asOf)
	if err != nil {
		logger.Error("Failed to sum organization balance", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return 0, err
	}
	return balance, nil
}
