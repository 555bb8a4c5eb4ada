package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTransaction is a row of the financial_transactions table.
type FinancialTransaction struct {
	TransactionID        string          `db:"transaction_id"`
	TenantID             string          `db:"tenant_id"`
	ApartmentID          string          `db:"apartment_id"`
	ContractID           *string         `db:"contract_id"`
	ScheduleID           *string         `db:"schedule_id"`
	RelatedTransactionID *string         `db:"related_transaction_id"`
	TransactionType      string          `db:"transaction_type"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	PaymentMethod        string          `db:"payment_method"`
	TransactionDate      time.Time       `db:"transaction_date"`
	DueDate              *time.Time      `db:"due_date"`
	Status               string          `db:"status"`
	Description          string          `db:"description"`
	ReceiptReference     *string         `db:"receipt_reference"`
	ProcessingFee        decimal.Decimal `db:"processing_fee"`
	LateFee              decimal.Decimal `db:"late_fee"`
	BillingPeriodStart   *time.Time      `db:"billing_period_start"`
	BillingPeriodEnd     *time.Time      `db:"billing_period_end"`
	ReferenceNumber      string          `db:"reference_number"`
	AuditFields
}

// TransactionRecord is a transaction joined with its display columns.
// The joined columns are nullable because a tenant may have moved out.
type TransactionRecord struct {
	FinancialTransaction
	TenantName      *string `db:"tenant_name"`
	ApartmentNumber *string `db:"apartment_number"`
	FloorNumber     *string `db:"floor_number"`
	BuildingID      *string `db:"building_id"`
	BuildingName    *string `db:"building_name"`
}

// TenantPaymentHistory is a row of the tenant_payment_history table.
type TenantPaymentHistory struct {
	HistoryID     string          `db:"history_id"`
	TenantID      string          `db:"tenant_id"`
	ApartmentID   string          `db:"apartment_id"`
	ContractID    *string         `db:"contract_id"`
	TransactionID string          `db:"transaction_id"`
	PaymentMonth  time.Time       `db:"payment_month"`
	PaymentDate   time.Time       `db:"payment_date"`
	RentAmount    decimal.Decimal `db:"rent_amount"`
	LateFee       decimal.Decimal `db:"late_fee"`
	TotalPaid     decimal.Decimal `db:"total_paid"`
	Status        string          `db:"status"`
	AuditFields
}
