package mapping

import (
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/models"
)

// ToModelAccount converts a domain FinanceAccount to a model FinanceAccount
func ToModelAccount(d domain.FinanceAccount) models.FinanceAccount {
	return models.FinanceAccount{
		AccountID:      d.AccountID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Kind:           models.AccountKind(d.Kind),
		CurrencyCode:   d.CurrencyCode,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model FinanceAccount to a domain FinanceAccount
func ToDomainAccount(m models.FinanceAccount) domain.FinanceAccount {
	return domain.FinanceAccount{
		AccountID:      m.AccountID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Kind:           domain.AccountKind(m.Kind),
		CurrencyCode:   m.CurrencyCode,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model accounts to domain accounts
func ToDomainAccountSlice(ms []models.FinanceAccount) []domain.FinanceAccount {
	ds := make([]domain.FinanceAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToModelCategory converts a domain FinanceCategory to a model FinanceCategory
func ToModelCategory(d domain.FinanceCategory) models.FinanceCategory {
	return models.FinanceCategory{
		CategoryID:     d.CategoryID,
		OrganizationID: d.OrganizationID,
		Type:           models.CategoryType(d.Type),
		Name:           d.Name,
		Icon:           d.Icon,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model FinanceCategory to a domain FinanceCategory
func ToDomainCategory(m models.FinanceCategory) domain.FinanceCategory {
	return domain.FinanceCategory{
		CategoryID:     m.CategoryID,
		OrganizationID: m.OrganizationID,
		Type:           domain.CategoryType(m.Type),
		Name:           m.Name,
		Icon:           m.Icon,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model categories to domain categories
func ToDomainCategorySlice(ms []models.FinanceCategory) []domain.FinanceCategory {
	ds := make([]domain.FinanceCategory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
