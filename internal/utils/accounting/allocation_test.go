package accounting_test

import (
	"testing"
	"time"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
	"github.com/edusuite/school_finance_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installment(id string, number int, amount, paid int64) domain.FeeInstallment {
	return domain.FeeInstallment{
		InstallmentID:     id,
		FeeID:             "fee-1",
		InstallmentNumber: number,
		DueDate:           time.Date(2026, time.Month(number), 10, 0, 0, 0, 0, time.UTC),
		AmountMinor:       amount,
		PaidAmountMinor:   paid,
		Status:            accounting.DeriveInstallmentStatus(paid, amount),
	}
}

func TestAllocatePayment_OldestFirst(t *testing.T) {
	// Fee of 100000 split [33334, 33333, 33333]; a payment of 40000 fills
	// installment 1 and leaves 6666 on installment 2.
	installments := []domain.FeeInstallment{
		installment("i1", 1, 33334, 0),
		installment("i2", 2, 33333, 0),
		installment("i3", 3, 33333, 0),
	}

	updates, err := accounting.AllocatePayment(installments, 40000)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, "i1", updates[0].InstallmentID)
	assert.Equal(t, int64(33334), updates[0].AllocatedMinor)
	assert.Equal(t, int64(33334), updates[0].PaidAmountMinor)
	assert.Equal(t, domain.InstallmentPaid, updates[0].Status)

	assert.Equal(t, "i2", updates[1].InstallmentID)
	assert.Equal(t, int64(6666), updates[1].AllocatedMinor)
	assert.Equal(t, int64(6666), updates[1].PaidAmountMinor)
	assert.Equal(t, domain.InstallmentPartial, updates[1].Status)
}

func TestAllocatePayment_SkipsPaidAndCancelled(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i1", 1, 10000, 10000),
		{InstallmentID: "i2", FeeID: "fee-1", InstallmentNumber: 2, AmountMinor: 10000, Status: domain.InstallmentCancelled},
		installment("i3", 3, 10000, 2500),
	}

	updates, err := accounting.AllocatePayment(installments, 5000)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "i3", updates[0].InstallmentID)
	assert.Equal(t, int64(7500), updates[0].PaidAmountMinor)
	assert.Equal(t, domain.InstallmentPartial, updates[0].Status)
}

func TestAllocatePayment_UnorderedInputStillOldestFirst(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i3", 3, 1000, 0),
		installment("i1", 1, 1000, 0),
		installment("i2", 2, 1000, 0),
	}

	updates, err := accounting.AllocatePayment(installments, 1500)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "i1", updates[0].InstallmentID)
	assert.Equal(t, "i2", updates[1].InstallmentID)
}

func TestAllocatePayment_ExactPayoff(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i1", 1, 5000, 1000),
		installment("i2", 2, 5000, 0),
	}

	updates, err := accounting.AllocatePayment(installments, 9000)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, domain.InstallmentPaid, updates[0].Status)
	assert.Equal(t, domain.InstallmentPaid, updates[1].Status)

	var allocated int64
	for _, u := range updates {
		allocated += u.AllocatedMinor
	}
	assert.Equal(t, int64(9000), allocated)
}

func TestAllocatePayment_OverpaymentRejected(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i1", 1, 5000, 4000),
		installment("i2", 2, 5000, 0),
	}

	updates, err := accounting.AllocatePayment(installments, 6001)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, updates)
}

func TestAllocatePayment_InvalidAmount(t *testing.T) {
	installments := []domain.FeeInstallment{installment("i1", 1, 5000, 0)}

	_, err := accounting.AllocatePayment(installments, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.AllocatePayment(installments, -100)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAllocatePayment_ConservesAmountAndNeverOverfills(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i1", 1, 33334, 0),
		installment("i2", 2, 33333, 0),
		installment("i3", 3, 33333, 0),
	}

	// Sequence of payments that together pay the fee exactly.
	payments := []int64{40000, 1, 59999}
	var totalAllocated int64
	for _, p := range payments {
		updates, err := accounting.AllocatePayment(installments, p)
		require.NoError(t, err)

		for _, u := range updates {
			totalAllocated += u.AllocatedMinor
			for i := range installments {
				if installments[i].InstallmentID == u.InstallmentID {
					installments[i].PaidAmountMinor = u.PaidAmountMinor
					installments[i].Status = u.Status
					require.LessOrEqual(t, installments[i].PaidAmountMinor, installments[i].AmountMinor)
				}
			}
		}
	}
	assert.Equal(t, int64(100000), totalAllocated)

	// Fully paid now; one more minor unit must be rejected.
	_, err := accounting.AllocatePayment(installments, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFeeCompleted(t *testing.T) {
	installments := []domain.FeeInstallment{
		installment("i1", 1, 5000, 5000),
		installment("i2", 2, 5000, 4000),
		{InstallmentID: "i3", FeeID: "fee-1", InstallmentNumber: 3, AmountMinor: 5000, Status: domain.InstallmentCancelled},
	}

	updates := []accounting.InstallmentUpdate{
		{InstallmentID: "i2", AllocatedMinor: 1000, PaidAmountMinor: 5000, Status: domain.InstallmentPaid},
	}
	assert.True(t, accounting.FeeCompleted(installments, updates))
	assert.False(t, accounting.FeeCompleted(installments, nil))
}
