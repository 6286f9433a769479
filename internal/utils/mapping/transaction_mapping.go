package mapping

import (
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/models"
)

// ToModelTransaction converts a domain FinanceTransaction to a model FinanceTransaction
func ToModelTransaction(d domain.FinanceTransaction) models.FinanceTransaction {
	return models.FinanceTransaction{
		TransactionID:  d.TransactionID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		CategoryID:     d.CategoryID,
		Type:           models.TransactionType(d.Type),
		AmountMinor:    d.AmountMinor,
		OccurredOn:     d.OccurredOn,
		Description:    d.Description,
		SourceRef:      d.SourceRef,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model FinanceTransaction to a domain FinanceTransaction
func ToDomainTransaction(m models.FinanceTransaction) domain.FinanceTransaction {
	return domain.FinanceTransaction{
		TransactionID:  m.TransactionID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		CategoryID:     m.CategoryID,
		Type:           domain.TransactionType(m.Type),
		AmountMinor:    m.AmountMinor,
		OccurredOn:     m.OccurredOn,
		Description:    m.Description,
		SourceRef:      m.SourceRef,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model transactions to domain transactions
func ToDomainTransactionSlice(ms []models.FinanceTransaction) []domain.FinanceTransaction {
	ds := make([]domain.FinanceTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
