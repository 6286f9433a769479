package dto

import (
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/utils"
)

// CreateAccountRequest creates a new money container.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	Kind         string `json:"kind" binding:"required,oneof=CASH BANK POS"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// AccountResponse is the API representation of an account. BalanceMinor is a
// derived projection, included only where the handler computed it.
type AccountResponse struct {
	AccountID        string `json:"accountID"`
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	CurrencyCode     string `json:"currencyCode"`
	IsActive         bool   `json:"isActive"`
	BalanceMinor     *int64 `json:"balanceMinor,omitempty"`
	BalanceFormatted string `json:"balanceFormatted,omitempty"`
}

// ToAccountResponse converts a domain account to the API representation.
func ToAccountResponse(a *domain.FinanceAccount) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		Kind:         string(a.Kind),
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
	}
}

// ToAccountResponseWithBalance converts a domain account and its derived
// balance to the API representation.
func ToAccountResponseWithBalance(a *domain.FinanceAccount, balanceMinor int64) AccountResponse {
	resp := ToAccountResponse(a)
	resp.BalanceMinor = &balanceMinor
	resp.BalanceFormatted = utils.FormatMinorUnits(balanceMinor, a.CurrencyCode)
	return resp
}
