package dto

import (
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// CreateFeeRequest assigns a fee basket to a student. InstallmentCount may be
// omitted; the organization's default installment count applies then.
type CreateFeeRequest struct {
	StudentID        string `json:"studentID" binding:"required,uuid"`
	ClassID          string `json:"classID" binding:"required,uuid"`
	TotalAmountMinor int64  `json:"totalAmountMinor" binding:"required,gt=0"`
	InstallmentCount int    `json:"installmentCount" binding:"omitempty,min=1"`
	AcademicPeriod   string `json:"academicPeriod" binding:"required"`
}

// InstallmentResponse is the API representation of one installment.
type InstallmentResponse struct {
	InstallmentID     string    `json:"installmentID"`
	InstallmentNumber int       `json:"installmentNumber"`
	DueDate           time.Time `json:"dueDate"`
	AmountMinor       int64     `json:"amountMinor"`
	PaidAmountMinor   int64     `json:"paidAmountMinor"`
	Status            string    `json:"status"`
}

// FeeResponse is the API representation of a student fee.
type FeeResponse struct {
	FeeID            string                `json:"feeID"`
	StudentID        string                `json:"studentID"`
	ClassID          string                `json:"classID"`
	TotalAmountMinor int64                 `json:"totalAmountMinor"`
	InstallmentCount int                   `json:"installmentCount"`
	AcademicPeriod   string                `json:"academicPeriod"`
	Status           string                `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	Installments     []InstallmentResponse `json:"installments,omitempty"`
}

// ToInstallmentResponse converts a domain installment to the API representation.
func ToInstallmentResponse(i *domain.FeeInstallment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:     i.InstallmentID,
		InstallmentNumber: i.InstallmentNumber,
		DueDate:           i.DueDate,
		AmountMinor:       i.AmountMinor,
		PaidAmountMinor:   i.PaidAmountMinor,
		Status:            string(i.Status),
	}
}

// ToInstallmentResponses converts a slice of domain installments.
func ToInstallmentResponses(is []domain.FeeInstallment) []InstallmentResponse {
	resp := make([]InstallmentResponse, len(is))
	for i := range is {
		resp[i] = ToInstallmentResponse(&is[i])
	}
	return resp
}

// ToFeeResponse converts a domain fee (with or without installments).
func ToFeeResponse(f *domain.StudentFee) FeeResponse {
	resp := FeeResponse{
		FeeID:            f.FeeID,
		StudentID:        f.StudentID,
		ClassID:          f.ClassID,
		TotalAmountMinor: f.TotalAmountMinor,
		InstallmentCount: f.InstallmentCount,
		AcademicPeriod:   f.AcademicPeriod,
		Status:           string(f.Status),
		CreatedAt:        f.CreatedAt,
	}
	if len(f.Installments) > 0 {
		resp.Installments = ToInstallmentResponses(f.Installments)
	}
	return resp
}

// ToFeeResponses converts a slice of domain fees.
func ToFeeResponses(fs []domain.StudentFee) []FeeResponse {
	resp := make([]FeeResponse, len(fs))
	for i := range fs {
		resp[i] = ToFeeResponse(&fs[i])
	}
	return resp
}
