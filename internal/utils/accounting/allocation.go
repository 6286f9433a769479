package accounting

import (
	"fmt"
	"sort"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// InstallmentUpdate is the result of allocating part of a payment to one
// installment: the new paid amount and the status derived from it.
type InstallmentUpdate struct {
	InstallmentID   string
	AllocatedMinor  int64
	PaidAmountMinor int64
	Status          domain.InstallmentStatus
}

// AllocatePayment distributes amountMinor across the fee's open installments
// using oldest-first amortization: installments are filled in ascending
// installment number, each up to its remaining room. It returns one update
// per touched installment.
//
// If any amount remains after all open installments are full, the whole
// allocation fails with ErrConflict (overpayment is rejected, not banked);
// the caller must not apply partial results.
func AllocatePayment(installments []domain.FeeInstallment, amountMinor int64) ([]InstallmentUpdate, error) {
	if amountMinor <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %d", apperrors.ErrValidation, amountMinor)
	}

	open := make([]domain.FeeInstallment, 0, len(installments))
	for _, inst := range installments {
		if inst.IsOpen() {
			open = append(open, inst)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].InstallmentNumber < open[j].InstallmentNumber
	})

	remaining := amountMinor
	updates := make([]InstallmentUpdate, 0, len(open))
	for _, inst := range open {
		if remaining == 0 {
			break
		}
		room := inst.RemainingMinor()
		if room <= 0 {
			continue
		}
		applied := room
		if remaining < room {
			applied = remaining
		}
		newPaid := inst.PaidAmountMinor + applied
		updates = append(updates, InstallmentUpdate{
			InstallmentID:   inst.InstallmentID,
			AllocatedMinor:  applied,
			PaidAmountMinor: newPaid,
			Status:          DeriveInstallmentStatus(newPaid, inst.AmountMinor),
		})
		remaining -= applied
	}

	if remaining > 0 {
		return nil, fmt.Errorf("%w: payment exceeds outstanding balance by %d minor units", apperrors.ErrConflict, remaining)
	}
	return updates, nil
}

// FeeCompleted reports whether every non-cancelled installment would be fully
// paid once the given updates are applied.
func FeeCompleted(installments []domain.FeeInstallment, updates []InstallmentUpdate) bool {
	updated := make(map[string]domain.InstallmentStatus, len(updates))
	for _, u := range updates {
		updated[u.InstallmentID] = u.Status
	}
	for _, inst := range installments {
		status := inst.Status
		if s, ok := updated[inst.InstallmentID]; ok {
			status = s
		}
		if status == domain.InstallmentCancelled {
			continue
		}
		if status != domain.InstallmentPaid {
			return false
		}
	}
	return true
}
