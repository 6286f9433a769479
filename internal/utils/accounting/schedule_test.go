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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSchedule_AmountsSumExactly(t *testing.T) {
	tests := []struct {
		name       string
		totalMinor int64
		count      int
		want       []int64
	}{
		{name: "even split", totalMinor: 90000, count: 3, want: []int64{30000, 30000, 30000}},
		{name: "remainder to earliest", totalMinor: 100000, count: 3, want: []int64{33334, 33333, 33333}},
		{name: "single installment", totalMinor: 12345, count: 1, want: []int64{12345}},
		{name: "remainder of two", totalMinor: 11, count: 3, want: []int64{4, 4, 3}},
		{name: "one unit per installment", totalMinor: 3, count: 3, want: []int64{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := accounting.BuildSchedule(tt.totalMinor, tt.count, date(2026, time.January, 10), 10)
			require.NoError(t, err)
			require.Len(t, lines, tt.count)

			var sum int64
			for i, line := range lines {
				assert.Equal(t, i+1, line.InstallmentNumber)
				assert.Equal(t, tt.want[i], line.AmountMinor)
				sum += line.AmountMinor
			}
			assert.Equal(t, tt.totalMinor, sum)
		})
	}
}

func TestBuildSchedule_SpreadNeverExceedsOneMinorUnit(t *testing.T) {
	totals := []int64{1, 7, 99, 1000, 99999, 100001, 123456789}
	counts := []int{1, 2, 3, 7, 12, 36}

	for _, total := range totals {
		for _, count := range counts {
			if int64(count) > total {
				continue
			}
			lines, err := accounting.BuildSchedule(total, count, date(2026, time.March, 1), 5)
			require.NoError(t, err)

			var sum, min, max int64
			min = lines[0].AmountMinor
			max = lines[0].AmountMinor
			for _, line := range lines {
				sum += line.AmountMinor
				if line.AmountMinor < min {
					min = line.AmountMinor
				}
				if line.AmountMinor > max {
					max = line.AmountMinor
				}
			}
			assert.Equal(t, total, sum, "total=%d count=%d", total, count)
			assert.LessOrEqual(t, max-min, int64(1), "total=%d count=%d", total, count)
			assert.GreaterOrEqual(t, min, int64(1), "total=%d count=%d", total, count)
		}
	}
}

func TestBuildSchedule_DueDates(t *testing.T) {
	// Due day 28 across month boundaries, including February and a year roll.
	lines, err := accounting.BuildSchedule(40000, 4, date(2025, time.November, 3), 28)
	require.NoError(t, err)

	wantDates := []time.Time{
		date(2025, time.November, 28),
		date(2025, time.December, 28),
		date(2026, time.January, 28),
		date(2026, time.February, 28),
	}
	for i, line := range lines {
		assert.True(t, line.DueDate.Equal(wantDates[i]), "installment %d: got %s want %s", i+1, line.DueDate, wantDates[i])
	}
}

func TestBuildSchedule_InvalidInput(t *testing.T) {
	first := date(2026, time.January, 1)

	_, err := accounting.BuildSchedule(0, 3, first, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildSchedule(-500, 3, first, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildSchedule(1000, 0, first, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Fewer minor units than installments would force a zero-amount line.
	_, err = accounting.BuildSchedule(2, 3, first, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildSchedule(1000, 3, first, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildSchedule(1000, 3, first, 29)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeriveInstallmentStatus(t *testing.T) {
	assert.Equal(t, domain.InstallmentPending, accounting.DeriveInstallmentStatus(0, 1000))
	assert.Equal(t, domain.InstallmentPartial, accounting.DeriveInstallmentStatus(1, 1000))
	assert.Equal(t, domain.InstallmentPartial, accounting.DeriveInstallmentStatus(999, 1000))
	assert.Equal(t, domain.InstallmentPaid, accounting.DeriveInstallmentStatus(1000, 1000))
}
