package accounting

import (
	"fmt"
	"time"

	"github.com/edusuite/school_finance_app/internal/apperrors"
	"github.com/edusuite/school_finance_app/internal/core/domain"
)

// ScheduleLine is one derived installment before persistence. The caller
// assigns IDs and persists the lines as FeeInstallment rows owned by the fee.
type ScheduleLine struct {
	InstallmentNumber int
	DueDate           time.Time
	AmountMinor       int64
}

// BuildSchedule derives an installment schedule from a fee total.
//
// base = totalMinor / count (integer division); installments 1..remainder
// receive base+1 so the lines always sum exactly to totalMinor and no two
// lines differ by more than one minor unit. The remainder goes to the
// earliest installments, so the final installment is never the odd one out.
// count must not exceed totalMinor, so every line carries at least one
// minor unit; a zero-amount installment could never leave PENDING.
//
// Due dates advance month by month from firstDue, with the day of month
// clamped to dueDay and to the last valid day of shorter months.
func BuildSchedule(totalMinor int64, count int, firstDue time.Time, dueDay int) ([]ScheduleLine, error) {
	if totalMinor <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive, got %d", apperrors.ErrValidation, totalMinor)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1, got %d", apperrors.ErrValidation, count)
	}
	if int64(count) > totalMinor {
		return nil, fmt.Errorf("%w: cannot split %d minor units into %d installments", apperrors.ErrValidation, totalMinor, count)
	}
	if dueDay < 1 || dueDay > 28 {
		return nil, fmt.Errorf("%w: payment due day must be within [1,28], got %d", apperrors.ErrValidation, dueDay)
	}

	base := totalMinor / int64(count)
	remainder := totalMinor % int64(count)

	lines := make([]ScheduleLine, count)
	for i := 0; i < count; i++ {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		lines[i] = ScheduleLine{
			InstallmentNumber: i + 1,
			DueDate:           monthlyDueDate(firstDue, i, dueDay),
			AmountMinor:       amount,
		}
	}
	return lines, nil
}

// monthlyDueDate returns firstDue advanced by monthsAhead months with the
// day of month clamped to dueDay. time.Date normalization is avoided on
// purpose: adding a month to Jan 31 must yield the end of February, not
// March 3rd.
func monthlyDueDate(firstDue time.Time, monthsAhead int, dueDay int) time.Time {
	year, month, _ := firstDue.Date()
	m := int(month) + monthsAhead

	// Normalize the month offset into year/month.
	year += (m - 1) / 12
	month = time.Month((m-1)%12 + 1)

	day := dueDay
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, firstDue.Location())
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DeriveInstallmentStatus computes the status implied by the paid and total
// amounts. Cancelled installments are terminal and never re-derived.
func DeriveInstallmentStatus(paidMinor, amountMinor int64) domain.InstallmentStatus {
	switch {
	case paidMinor <= 0:
		return domain.InstallmentPending
	case paidMinor < amountMinor:
		return domain.InstallmentPartial
	default:
		return domain.InstallmentPaid
	}
}
