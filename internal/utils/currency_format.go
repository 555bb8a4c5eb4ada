package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
}

// CurrencyPrecision returns the number of minor-unit digits for an ISO code.
func CurrencyPrecision(currencyCode string) int32 {
	if zeroDecimalCurrencies[strings.ToUpper(currencyCode)] {
		return 0
	}
	return 2
}

// RoundToCurrency rounds an amount to the precision of its currency.
// Example: 12.345 USD returns 12.35, 12.5 JPY returns 13.
func RoundToCurrency(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(CurrencyPrecision(currencyCode))
}

// FormatWithCurrencyPrecision formats an amount with the precision of its currency.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	return amount.StringFixed(CurrencyPrecision(currencyCode))
}
