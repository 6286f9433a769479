package dto

import (
	"time"

	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// AcademicPeriodDTO is one named date range in the settings payload.
type AcademicPeriodDTO struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// UpdateSettingsRequest replaces the organization's finance settings.
type UpdateSettingsRequest struct {
	CurrencyCode        string              `json:"currencyCode" binding:"required,len=3,uppercase"`
	DefaultInstallments int                 `json:"defaultInstallments" binding:"required,min=1"`
	PaymentDueDay       int                 `json:"paymentDueDay" binding:"required,min=1,max=28"`
	AcademicPeriods     []AcademicPeriodDTO `json:"academicPeriods" binding:"omitempty,dive"`
}

// SettingsResponse is the API representation of finance settings.
type SettingsResponse struct {
	OrganizationID      string              `json:"organizationID"`
	CurrencyCode        string              `json:"currencyCode"`
	DefaultInstallments int                 `json:"defaultInstallments"`
	PaymentDueDay       int                 `json:"paymentDueDay"`
	AcademicPeriods     []AcademicPeriodDTO `json:"academicPeriods"`
}

// ToSettingsResponse converts domain settings to the API representation.
func ToSettingsResponse(s *domain.FinanceSettings) SettingsResponse {
	periods := make([]AcademicPeriodDTO, len(s.AcademicPeriods))
	for i, p := range s.AcademicPeriods {
		periods[i] = AcademicPeriodDTO{Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate}
	}
	return SettingsResponse{
		OrganizationID:      s.OrganizationID,
		CurrencyCode:        s.CurrencyCode,
		DefaultInstallments: s.DefaultInstallments,
		PaymentDueDay:       s.PaymentDueDay,
		AcademicPeriods:     periods,
	}
}
