package models

import "time"

// FeeStatus mirrors domain.FeeStatus at the persistence layer.
type FeeStatus string

// InstallmentStatus mirrors domain.InstallmentStatus at the persistence layer.
type InstallmentStatus string

// StudentFee maps the student_fees table.
type StudentFee struct {
	FeeID            string    `db:"fee_id"`
	OrganizationID   string    `db:"organization_id"`
	StudentID        string    `db:"student_id"`
	ClassID          string    `db:"class_id"`
	TotalAmountMinor int64     `db:"total_amount_minor"`
	InstallmentCount int       `db:"installment_count"`
	AcademicPeriod   string    `db:"academic_period"`
	Status           FeeStatus `db:"status"`
	AuditFields
}

// FeeInstallment maps the fee_installments table.
// (fee_id, installment_number) carries a unique constraint.
type FeeInstallment struct {
	InstallmentID     string            `db:"installment_id"`
	FeeID             string            `db:"fee_id"`
	InstallmentNumber int               `db:"installment_number"`
	DueDate           time.Time         `db:"due_date"`
	AmountMinor       int64             `db:"amount_minor"`
	PaidAmountMinor   int64             `db:"paid_amount_minor"`
	Status            InstallmentStatus `db:"status"`
	AuditFields
}
