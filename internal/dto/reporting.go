package dto

import (
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/utils"
)

// SummaryResponse is the financial summary report payload.
type SummaryResponse struct {
	TotalIncomeMinor    int64  `json:"totalIncomeMinor"`
	TotalExpenseMinor   int64  `json:"totalExpenseMinor"`
	NetMinor            int64  `json:"netMinor"`
	NetFormatted        string `json:"netFormatted"`
	OutstandingMinor    int64  `json:"outstandingMinor"`
	OverdueInstallments int    `json:"overdueInstallments"`
}

// ToSummaryResponse converts a domain summary, formatting the net amount in
// the organization's currency.
func ToSummaryResponse(s *domain.FinancialSummary, currencyCode string) SummaryResponse {
	return SummaryResponse{
		TotalIncomeMinor:    s.TotalIncomeMinor,
		TotalExpenseMinor:   s.TotalExpenseMinor,
		NetMinor:            s.NetMinor,
		NetFormatted:        utils.FormatMinorUnits(s.NetMinor, currencyCode),
		OutstandingMinor:    s.OutstandingMinor,
		OverdueInstallments: s.OverdueInstallmentsNum,
	}
}

// TrendPointResponse is one month bucket in the trends report.
type TrendPointResponse struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"`
	IncomeMinor  int64 `json:"incomeMinor"`
	ExpenseMinor int64 `json:"expenseMinor"`
}

// ToTrendResponses converts domain trend points.
func ToTrendResponses(points []domain.MonthlyTrendPoint) []TrendPointResponse {
	resp := make([]TrendPointResponse, len(points))
	for i, p := range points {
		resp[i] = TrendPointResponse{Year: p.Year, Month: p.Month, IncomeMinor: p.IncomeMinor, ExpenseMinor: p.ExpenseMinor}
	}
	return resp
}

// CategoryDistributionResponse is the category distribution report payload.
type CategoryDistributionResponse struct {
	Type       string                  `json:"type"`
	TotalMinor int64                   `json:"totalMinor"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// CategoryTotalResponse is one category's share.
type CategoryTotalResponse struct {
	CategoryID   string  `json:"categoryID"`
	CategoryName string  `json:"categoryName"`
	AmountMinor  int64   `json:"amountMinor"`
	Percentage   float64 `json:"percentage"`
}

// OverdueInstallmentResponse is one row of the overdue report.
type OverdueInstallmentResponse struct {
	InstallmentID     string    `json:"installmentID"`
	FeeID             string    `json:"feeID"`
	StudentID         string    `json:"studentID"`
	InstallmentNumber int       `json:"installmentNumber"`
	DueDate           time.Time `json:"dueDate"`
	AmountMinor       int64     `json:"amountMinor"`
	PaidAmountMinor   int64     `json:"paidAmountMinor"`
	RemainingMinor    int64     `json:"remainingMinor"`
	Status            string    `json:"status"`
}

// ToOverdueResponses converts domain overdue rows.
func ToOverdueResponses(rows []domain.OverdueInstallment) []OverdueInstallmentResponse {
	resp := make([]OverdueInstallmentResponse, len(rows))
	for i, r := range rows {
		resp[i] = OverdueInstallmentResponse{
			InstallmentID:     r.InstallmentID,
			FeeID:             r.FeeID,
			StudentID:         r.StudentID,
			InstallmentNumber: r.InstallmentNumber,
			DueDate:           r.DueDate,
			AmountMinor:       r.AmountMinor,
			PaidAmountMinor:   r.PaidAmountMinor,
			RemainingMinor:    r.AmountMinor - r.PaidAmountMinor,
			Status:            string(r.Status),
		}
	}
	return resp
}

// ReportRange is the optional date range shared by report queries.
type ReportRange struct {
	From time.Time
	To   time.Time
}
