package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received against a contract, optionally linked to an invoice.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	InvoiceID        *string         `json:"invoiceID,omitempty"`
	ContractID       string          `json:"contractID"`
	TenantID         string          `json:"tenantID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"paymentMethod"`
	ReferenceNumber  *string         `json:"referenceNumber,omitempty"`
	IsAdvancePayment bool            `json:"isAdvancePayment"`
	Notes            string          `json:"notes"`
	BuildingID       string          `json:"buildingID,omitempty"`
	AuditFields
}

// ScopeFacts returns the ownership facts used for access checks.
func (p Payment) ScopeFacts() ScopeFacts {
	return ScopeFacts{BuildingID: p.BuildingID, CreatedBy: p.CreatedBy, RowID: p.PaymentID}
}

// Validate checks a payment before it is written.
func (p Payment) Validate() error {
	if p.ContractID == "" || p.TenantID == "" {
		return errors.New("payment requires a contract and a tenant")
	}
	if !p.Amount.IsPositive() {
		return errors.New("payment amount must be positive")
	}
	if p.PaymentDate.IsZero() {
		return errors.New("payment date is required")
	}
	return nil
}

// PaymentPatch enumerates the mutable fields of a payment. InvoiceID set to
// an empty string unlinks the payment from its invoice.
type PaymentPatch struct {
	Amount          *decimal.Decimal
	PaymentDate     *time.Time
	PaymentMethod   *string
	ReferenceNumber *string
	InvoiceID       *string
	Notes           *string
}

// IsEmpty reports whether the patch names no field at all.
func (p PaymentPatch) IsEmpty() bool {
	return p.Amount == nil && p.PaymentDate == nil && p.PaymentMethod == nil &&
		p.ReferenceNumber == nil && p.InvoiceID == nil && p.Notes == nil
}

// ApplyTo copies the patched fields onto pay.
func (p PaymentPatch) ApplyTo(pay *Payment) {
	if p.Amount != nil {
		pay.Amount = *p.Amount
	}
	if p.PaymentDate != nil {
		pay.PaymentDate = *p.PaymentDate
	}
	if p.PaymentMethod != nil {
		pay.PaymentMethod = *p.PaymentMethod
	}
	if p.ReferenceNumber != nil {
		pay.ReferenceNumber = p.ReferenceNumber
	}
	if p.InvoiceID != nil {
		if *p.InvoiceID == "" {
			pay.InvoiceID = nil
		} else {
			id := *p.InvoiceID
			pay.InvoiceID = &id
		}
	}
	if p.Notes != nil {
		pay.Notes = *p.Notes
	}
}
