package utils

import "github.com/shopspring/decimal"

// zeroDecimalCurrencies are ISO 4217 codes whose minor unit is the major unit.
var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "UGX": {}, "RWF": {}, "XAF": {}, "XOF": {},
}

// CurrencyPrecision returns the number of minor-unit digits for a currency
// code. Internal arithmetic never depends on this; it only shapes display.
func CurrencyPrecision(code string) int {
	if _, ok := zeroDecimalCurrencies[code]; ok {
		return 0
	}
	return 2
}

// FormatMinorUnits renders an integer minor-unit amount as a display string
// in major units.
// Example: FormatMinorUnits(123456, "USD") returns "1234.56".
// Example: FormatMinorUnits(123456, "UGX") returns "123456".
func FormatMinorUnits(amountMinor int64, currencyCode string) string {
	precision := CurrencyPrecision(currencyCode)
	return decimal.New(amountMinor, int32(-precision)).StringFixed(int32(precision))
}
