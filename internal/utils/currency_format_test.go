package utils_test

import (
	"testing"

	"github.com/edusuite/school_finance_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name        string
		amountMinor int64
		currency    string
		want        string
	}{
		{name: "two decimal currency", amountMinor: 123456, currency: "USD", want: "1234.56"},
		{name: "exact major units", amountMinor: 500000, currency: "EUR", want: "5000.00"},
		{name: "sub major amount", amountMinor: 5, currency: "USD", want: "0.05"},
		{name: "zero decimal currency", amountMinor: 123456, currency: "UGX", want: "123456"},
		{name: "zero", amountMinor: 0, currency: "USD", want: "0.00"},
		{name: "negative net", amountMinor: -250, currency: "USD", want: "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatMinorUnits(tt.amountMinor, tt.currency))
		})
	}
}
