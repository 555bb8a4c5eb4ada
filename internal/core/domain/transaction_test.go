package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinancialTransaction_DeriveHistory(t *testing.T) {
	contractID := "contract-1"
	txn := domain.FinancialTransaction{
		TransactionID:   "txn-1",
		TenantID:        "tenant-1",
		ApartmentID:     "apt-1",
		ContractID:      &contractID,
		Type:            domain.RentPayment,
		Status:          domain.TransactionCompleted,
		Amount:          decimal.NewFromInt(2600),
		LateFee:         decimal.NewFromInt(100),
		TransactionDate: time.Date(2025, time.March, 9, 15, 4, 0, 0, time.UTC),
	}

	h := txn.DeriveHistory()
	assert.Equal(t, "txn-1", h.TransactionID)
	assert.Equal(t, domain.HistoryLate, h.Status)
	assert.True(t, decimal.NewFromInt(2500).Equal(h.RentAmount))
	assert.True(t, decimal.NewFromInt(2600).Equal(h.TotalPaid))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), h.PaymentMonth)
	assert.Equal(t, &contractID, h.ContractID)

	txn.LateFee = decimal.Zero
	period := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	txn.BillingPeriodStart = &period
	h = txn.DeriveHistory()
	assert.Equal(t, domain.HistoryOnTime, h.Status)
	assert.Equal(t, period, h.PaymentMonth)
	assert.True(t, txn.Amount.Equal(h.RentAmount))
}

func TestFinancialTransaction_SettlesRent(t *testing.T) {
	assert.True(t, domain.FinancialTransaction{Type: domain.RentPayment, Status: domain.TransactionCompleted}.SettlesRent())
	assert.False(t, domain.FinancialTransaction{Type: domain.RentPayment, Status: domain.TransactionPending}.SettlesRent())
	assert.False(t, domain.FinancialTransaction{Type: domain.MaintenanceFee, Status: domain.TransactionCompleted}.SettlesRent())
}

func TestTransactionPatch_Validate(t *testing.T) {
	bad := domain.TransactionStatus("Settled")
	negative := decimal.NewFromInt(-1)
	blank := ""
	desc := "updated"

	assert.Error(t, domain.TransactionPatch{}.Validate())
	assert.Error(t, domain.TransactionPatch{Status: &bad}.Validate())
	assert.Error(t, domain.TransactionPatch{LateFee: &negative}.Validate())
	assert.Error(t, domain.TransactionPatch{ReferenceNumber: &blank}.Validate())
	assert.NoError(t, domain.TransactionPatch{Description: &desc}.Validate())
}

func TestTransactionPatch_ApplyTo(t *testing.T) {
	completed := domain.TransactionCompleted
	fee := decimal.NewFromInt(50)
	txn := domain.FinancialTransaction{Status: domain.TransactionPending, Description: "keep"}

	domain.TransactionPatch{Status: &completed, LateFee: &fee}.ApplyTo(&txn)

	assert.Equal(t, domain.TransactionCompleted, txn.Status)
	assert.True(t, fee.Equal(txn.LateFee))
	assert.Equal(t, "keep", txn.Description)
}
