package mapping

import (
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/models"
)

// ToModelFee converts a domain StudentFee to a model StudentFee
func ToModelFee(d domain.StudentFee) models.StudentFee {
	return models.StudentFee{
		FeeID:            d.FeeID,
		OrganizationID:   d.OrganizationID,
		StudentID:        d.StudentID,
		ClassID:          d.ClassID,
		TotalAmountMinor: d.TotalAmountMinor,
		InstallmentCount: d.InstallmentCount,
		AcademicPeriod:   d.AcademicPeriod,
		Status:           models.FeeStatus(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFee converts a model StudentFee to a domain StudentFee
func ToDomainFee(m models.StudentFee) domain.StudentFee {
	return domain.StudentFee{
		FeeID:            m.FeeID,
		OrganizationID:   m.OrganizationID,
		StudentID:        m.StudentID,
		ClassID:          m.ClassID,
		TotalAmountMinor: m.TotalAmountMinor,
		InstallmentCount: m.InstallmentCount,
		AcademicPeriod:   m.AcademicPeriod,
		Status:           domain.FeeStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFeeSlice converts a slice of model fees to domain fees
func ToDomainFeeSlice(ms []models.StudentFee) []domain.StudentFee {
	ds := make([]domain.StudentFee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFee(m)
	}
	return ds
}

// ToModelInstallment converts a domain FeeInstallment to a model FeeInstallment
func ToModelInstallment(d domain.FeeInstallment) models.FeeInstallment {
	return models.FeeInstallment{
		InstallmentID:     d.InstallmentID,
		FeeID:             d.FeeID,
		InstallmentNumber: d.InstallmentNumber,
		DueDate:           d.DueDate,
		AmountMinor:       d.AmountMinor,
		PaidAmountMinor:   d.PaidAmountMinor,
		Status:            models.InstallmentStatus(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a model FeeInstallment to a domain FeeInstallment
func ToDomainInstallment(m models.FeeInstallment) domain.FeeInstallment {
	return domain.FeeInstallment{
		InstallmentID:     m.InstallmentID,
		FeeID:             m.FeeID,
		InstallmentNumber: m.InstallmentNumber,
		DueDate:           m.DueDate,
		AmountMinor:       m.AmountMinor,
		PaidAmountMinor:   m.PaidAmountMinor,
		Status:            domain.InstallmentStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model installments to domain installments
func ToDomainInstallmentSlice(ms []models.FeeInstallment) []domain.FeeInstallment {
	ds := make([]domain.FeeInstallment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}

// ToModelPayment converts a domain FeePayment to a model FeePayment
func ToModelPayment(d domain.FeePayment) models.FeePayment {
	return models.FeePayment{
		PaymentID:      d.PaymentID,
		OrganizationID: d.OrganizationID,
		StudentID:      d.StudentID,
		FeeID:          d.FeeID,
		AccountID:      d.AccountID,
		AmountMinor:    d.AmountMinor,
		PaidOn:         d.PaidOn,
		Method:         models.PaymentMethod(d.Method),
		IdempotencyKey: d.IdempotencyKey,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model FeePayment to a domain FeePayment
func ToDomainPayment(m models.FeePayment) domain.FeePayment {
	return domain.FeePayment{
		PaymentID:      m.PaymentID,
		OrganizationID: m.OrganizationID,
		StudentID:      m.StudentID,
		FeeID:          m.FeeID,
		AccountID:      m.AccountID,
		AmountMinor:    m.AmountMinor,
		PaidOn:         m.PaidOn,
		Method:         domain.PaymentMethod(m.Method),
		IdempotencyKey: m.IdempotencyKey,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model payments to domain payments
func ToDomainPaymentSlice(ms []models.FeePayment) []domain.FeePayment {
	ds := make([]domain.FeePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToDomainAllocation converts a model PaymentAllocation to a domain PaymentAllocation
func ToDomainAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:  m.AllocationID,
		PaymentID:     m.PaymentID,
		InstallmentID: m.InstallmentID,
		AmountMinor:   m.AmountMinor,
	}
}
