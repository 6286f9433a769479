package domain

// CategoryType splits categories into the two sides of the ledger.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// FinanceCategory is a named classification for transactions.
// (organizationID, name, type) is unique.
type FinanceCategory struct {
	CategoryID     string       `json:"categoryID"`
	OrganizationID string       `json:"organizationID"`
	Type           CategoryType `json:"type"`
	Name           string       `json:"name"`
	Icon           string       `json:"icon"` // Nullable display hint
	AuditFields
}
