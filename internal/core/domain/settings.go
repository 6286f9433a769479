package domain

import "time"

// AcademicPeriod is a named date range (term, semester) used to scope fees.
// Periods for one organization are ordered and must not overlap.
type AcademicPeriod struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// FinanceSettings holds organization-wide finance configuration.
// Exactly one row exists per organization; it is loaded per request into an
// explicit value passed to the engines, never read from process-wide state.
type FinanceSettings struct {
	OrganizationID      string           `json:"organizationID"`
	CurrencyCode        string           `json:"currencyCode"`        // ISO 4217, 3 letters
	DefaultInstallments int              `json:"defaultInstallments"` // >= 1
	PaymentDueDay       int              `json:"paymentDueDay"`       // day of month, 1..28
	AcademicPeriods     []AcademicPeriod `json:"academicPeriods"`
	AuditFields
}

// PeriodByName returns the academic period with the given name, if any.
func (s FinanceSettings) PeriodByName(name string) (AcademicPeriod, bool) {
	for _, p := range s.AcademicPeriods {
		if p.Name == name {
			return p, true
		}
	}
	return AcademicPeriod{}, false
}
