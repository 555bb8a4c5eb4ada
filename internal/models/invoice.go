package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID          string          `db:"invoice_id"`
	ContractID         string          `db:"contract_id"`
	TenantID           string          `db:"tenant_id"`
	ApartmentID        string          `db:"apartment_id"`
	InvoiceNumber      string          `db:"invoice_number"`
	BillingPeriodStart time.Time       `db:"billing_period_start"`
	BillingPeriodEnd   time.Time       `db:"billing_period_end"`
	DueDate            time.Time       `db:"due_date"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	AmountDue          decimal.Decimal `db:"amount_due"`
	Currency           string          `db:"currency"`
	Status             string          `db:"status"`
	AuditFields
	BuildingID *string `db:"building_id"` // joined, not stored
}

// Payment is a row of the payments table.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	InvoiceID        *string         `db:"invoice_id"`
	ContractID       string          `db:"contract_id"`
	TenantID         string          `db:"tenant_id"`
	PaymentDate      time.Time       `db:"payment_date"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentMethod    string          `db:"payment_method"`
	ReferenceNumber  *string         `db:"reference_number"`
	IsAdvancePayment bool            `db:"is_advance_payment"`
	Notes            string          `db:"notes"`
	AuditFields
	BuildingID *string `db:"building_id"` // joined, not stored
}
