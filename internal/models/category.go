package models

// CategoryType mirrors domain.CategoryType at the persistence layer.
type CategoryType string

// FinanceCategory maps the finance_categories table.
// (organization_id, name, type) carries a unique constraint.
type FinanceCategory struct {
	CategoryID     string       `db:"category_id"`
	OrganizationID string       `db:"organization_id"`
	Type           CategoryType `db:"type"`
	Name           string       `db:"name"`
	Icon           string       `db:"icon"`
	AuditFields
}
