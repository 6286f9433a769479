package dto

import (
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// RecordTransactionRequest records a manual income or expense entry.
type RecordTransactionRequest struct {
	AccountID   string    `json:"accountID" binding:"required,uuid"`
	CategoryID  string    `json:"categoryID" binding:"required,uuid"`
	Type        string    `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	AmountMinor int64     `json:"amountMinor" binding:"required,gt=0"`
	OccurredOn  time.Time `json:"occurredOn" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// TransactionResponse is the API representation of a ledger transaction.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	AccountID     string    `json:"accountID"`
	CategoryID    string    `json:"categoryID"`
	Type          string    `json:"type"`
	AmountMinor   int64     `json:"amountMinor"`
	OccurredOn    time.Time `json:"occurredOn"`
	Description   string    `json:"description"`
	SourceRef     *string   `json:"sourceRef,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction to the API representation.
func ToTransactionResponse(t *domain.FinanceTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Type:          string(t.Type),
		AmountMinor:   t.AmountMinor,
		OccurredOn:    t.OccurredOn,
		Description:   t.Description,
		SourceRef:     t.SourceRef,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.FinanceTransaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(ts))
	for i := range ts {
		resp[i] = ToTransactionResponse(&ts[i])
	}
	return resp
}

// ListTransactionsParams holds cursor pagination parameters.
type ListTransactionsParams struct {
	Limit     int
	NextToken *string
}

// ListTransactionsResponse is a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// BalanceResponse carries a derived balance.
type BalanceResponse struct {
	AccountID    string    `json:"accountID,omitempty"`
	BalanceMinor int64     `json:"balanceMinor"`
	AsOf         time.Time `json:"asOf"`
}
