package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceGenerated     InvoiceStatus = "Generated"
	InvoiceSent          InvoiceStatus = "Sent"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoicePartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceOverdue       InvoiceStatus = "Overdue"
	InvoiceCancelled     InvoiceStatus = "Cancelled"
)

// Invoice bills a tenant for a period. AmountPaid, AmountDue and Status are
// derived from the linked payments and are only ever written by reconciliation.
type Invoice struct {
	InvoiceID          string          `json:"invoiceID"`
	ContractID         string          `json:"contractID"`
	TenantID           string          `json:"tenantID"`
	ApartmentID        string          `json:"apartmentID"`
	InvoiceNumber      string          `json:"invoiceNumber"`
	BillingPeriodStart time.Time       `json:"billingPeriodStart"`
	BillingPeriodEnd   time.Time       `json:"billingPeriodEnd"`
	DueDate            time.Time       `json:"dueDate"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	AmountDue          decimal.Decimal `json:"amountDue"`
	Currency           string          `json:"currency"`
	Status             InvoiceStatus   `json:"status"`
	BuildingID         string          `json:"buildingID,omitempty"`
	AuditFields
}

// ScopeFacts returns the ownership facts used for access checks.
func (i Invoice) ScopeFacts() ScopeFacts {
	return ScopeFacts{BuildingID: i.BuildingID, CreatedBy: i.CreatedBy, RowID: i.InvoiceID}
}

// Settlement is the derived payment state of an invoice.
type Settlement struct {
	TotalPaid decimal.Decimal
	AmountDue decimal.Decimal
	Status    InvoiceStatus
}

// Reconcile derives the settlement of an invoice from the full sum of its
// linked payments. It depends only on its inputs, never on write order.
func Reconcile(totalAmount, totalPaid decimal.Decimal) Settlement {
	switch {
	case totalPaid.GreaterThanOrEqual(totalAmount) && totalPaid.IsPositive():
		return Settlement{TotalPaid: totalPaid, AmountDue: decimal.Zero, Status: InvoicePaid}
	case totalPaid.IsPositive():
		return Settlement{TotalPaid: totalPaid, AmountDue: totalAmount.Sub(totalPaid), Status: InvoicePartiallyPaid}
	default:
		return Settlement{TotalPaid: decimal.Zero, AmountDue: totalAmount, Status: InvoiceGenerated}
	}
}
