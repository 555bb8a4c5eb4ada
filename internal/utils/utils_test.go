package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference(t *testing.T) {
	day := time.Date(2026, time.January, 5, 23, 0, 0, 0, time.UTC)
	ref, err := GenerateReference("TXN", day)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TXN-20260105-[0-9A-F]{8}$`), ref)

	other, err := GenerateReference("TXN", day)
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)
}

func TestGenerateSecureRandomString_RejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestRoundToCurrency(t *testing.T) {
	assert.Equal(t, "12.35", RoundToCurrency(decimal.RequireFromString("12.345"), "USD").String())
	assert.Equal(t, "13", RoundToCurrency(decimal.RequireFromString("12.5"), "jpy").String())
	assert.Equal(t, "1200.00", FormatWithCurrencyPrecision(decimal.NewFromInt(1200), "USD"))
}

func TestGenerateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "property-ledger")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "property-ledger", claims.Issuer)

	_, err = GenerateJWT("", "secret", time.Hour, "property-ledger")
	assert.Error(t, err)
}
