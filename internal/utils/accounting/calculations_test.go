package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRefundableBalance(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, RefundableBalance(d("1000"), d("0")).Equal(d("1000")))
	assert.True(t, RefundableBalance(d("1000"), d("400")).Equal(d("600")))
	assert.True(t, RefundableBalance(d("1000"), d("1200")).IsZero())
}

func TestSum(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(d("400"), d("600"), d("0.50")).Equal(d("1000.50")))
}
