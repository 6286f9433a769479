package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/models"
)

// ToModelSettings converts domain FinanceSettings to a model FinanceSettings,
// serializing the academic periods to JSON.
func ToModelSettings(d domain.FinanceSettings) (models.FinanceSettings, error) {
	periods, err := json.Marshal(d.AcademicPeriods)
	if err != nil {
		return models.FinanceSettings{}, fmt.Errorf("marshal academic periods: %w", err)
	}
	return models.FinanceSettings{
		OrganizationID:      d.OrganizationID,
		CurrencyCode:        d.CurrencyCode,
		DefaultInstallments: d.DefaultInstallments,
		PaymentDueDay:       d.PaymentDueDay,
		AcademicPeriods:     periods,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainSettings converts a model FinanceSettings to domain FinanceSettings,
// deserializing the academic periods from JSON.
func ToDomainSettings(m models.FinanceSettings) (domain.FinanceSettings, error) {
	var periods []domain.AcademicPeriod
	if len(m.AcademicPeriods) > 0 {
		if err := json.Unmarshal(m.AcademicPeriods, &periods); err != nil {
			return domain.FinanceSettings{}, fmt.Errorf("unmarshal academic periods: %w", err)
		}
	}
	return domain.FinanceSettings{
		OrganizationID:      m.OrganizationID,
		CurrencyCode:        m.CurrencyCode,
		DefaultInstallments: m.DefaultInstallments,
		PaymentDueDay:       m.PaymentDueDay,
		AcademicPeriods:     periods,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}, nil
}
