package accounting

import (
	"github.com/shopspring/decimal"
)

// Sum totals a list of amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// RefundableBalance is what may still be refunded on an original amount
// after priorRefunds. It never goes below zero.
func RefundableBalance(original decimal.Decimal, priorRefunds ...decimal.Decimal) decimal.Decimal {
	remaining := original.Sub(Sum(priorRefunds...))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
