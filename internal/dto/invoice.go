package dto

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest bills the tenant of a contract for a period.
type CreateInvoiceRequest struct {
	ContractID         string          `json:"contractID" binding:"required"`
	InvoiceNumber      string          `json:"invoiceNumber" binding:"max=64"`
	BillingPeriodStart time.Time       `json:"billingPeriodStart" binding:"required"`
	BillingPeriodEnd   time.Time       `json:"billingPeriodEnd" binding:"required"`
	DueDate            time.Time       `json:"dueDate" binding:"required"`
	TotalAmount        decimal.Decimal `json:"totalAmount" binding:"required"`
	Currency           string          `json:"currency" binding:"omitempty,len=3"`
}

// ListInvoicesResponse is one page of invoices.
type ListInvoicesResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
