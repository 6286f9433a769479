package models

// FinanceSettings maps the finance_settings table. Academic periods are
// stored as a JSONB document ordered by start date.
type FinanceSettings struct {
	OrganizationID      string `db:"organization_id"`
	CurrencyCode        string `db:"currency_code"`
	DefaultInstallments int    `db:"default_installments"`
	PaymentDueDay       int    `db:"payment_due_day"`
	AcademicPeriods     []byte `db:"academic_periods"` // JSONB
	AuditFields
}
