package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryStatus describes how a rent payment landed relative to its due date.
type HistoryStatus string

const (
	HistoryOnTime  HistoryStatus = "On Time"
	HistoryLate    HistoryStatus = "Late"
	HistoryPartial HistoryStatus = "Partial"
)

// TenantPaymentHistory is the materialized projection of one completed rent
// payment transaction. It is never written independently of its transaction.
type TenantPaymentHistory struct {
	HistoryID     string          `json:"historyID"`
	TenantID      string          `json:"tenantID"`
	ApartmentID   string          `json:"apartmentID"`
	ContractID    *string         `json:"contractID,omitempty"`
	TransactionID string          `json:"transactionID"`
	PaymentMonth  time.Time       `json:"paymentMonth"`
	PaymentDate   time.Time       `json:"paymentDate"`
	RentAmount    decimal.Decimal `json:"rentAmount"`
	LateFee       decimal.Decimal `json:"lateFee"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Status        HistoryStatus   `json:"status"`
	AuditFields
}
