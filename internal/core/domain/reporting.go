package domain

import "time"

// FinancialSummary aggregates an organization's financial position over an
// optional date range.
type FinancialSummary struct {
	TotalIncomeMinor       int64 `json:"totalIncomeMinor"`
	TotalExpenseMinor      int64 `json:"totalExpenseMinor"`
	NetMinor               int64 `json:"netMinor"`
	OutstandingMinor       int64 `json:"outstandingMinor"` // receivables over non-cancelled installments
	OverdueInstallmentsNum int   `json:"overdueInstallments"`
}

// MonthlyTrendPoint is one calendar-month bucket of transaction totals.
// Every month in the queried range is present, zero-filled when idle.
type MonthlyTrendPoint struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"` // 1..12
	IncomeMinor  int64 `json:"incomeMinor"`
	ExpenseMinor int64 `json:"expenseMinor"`
}

// CategoryTotal is one category's share of a distribution.
type CategoryTotal struct {
	CategoryID   string  `json:"categoryID"`
	CategoryName string  `json:"categoryName"`
	AmountMinor  int64   `json:"amountMinor"`
	Percentage   float64 `json:"percentage"` // 0 when the grand total is 0
}

// OverdueInstallment is a not-fully-paid installment whose due date has
// passed. The set is computed at query time, never stored.
type OverdueInstallment struct {
	InstallmentID     string            `json:"installmentID"`
	FeeID             string            `json:"feeID"`
	StudentID         string            `json:"studentID"`
	InstallmentNumber int               `json:"installmentNumber"`
	DueDate           time.Time         `json:"dueDate"`
	AmountMinor       int64             `json:"amountMinor"`
	PaidAmountMinor   int64             `json:"paidAmountMinor"`
	Status            InstallmentStatus `json:"status"`
}
