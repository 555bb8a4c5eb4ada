package dto

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records money received against a contract.
type RecordPaymentRequest struct {
	ContractID       string          `json:"contractID" binding:"required"`
	InvoiceID        *string         `json:"invoiceID"`
	PaymentDate      *time.Time      `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod    string          `json:"paymentMethod"`
	ReferenceNumber  *string         `json:"referenceNumber" binding:"omitempty,max=64"`
	IsAdvancePayment bool            `json:"isAdvancePayment"`
	Notes            string          `json:"notes" binding:"max=500"`
}

// UpdatePaymentRequest lists exactly the mutable fields of a payment.
type UpdatePaymentRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	PaymentDate     *time.Time       `json:"paymentDate"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ReferenceNumber *string          `json:"referenceNumber" binding:"omitempty,max=64"`
	InvoiceID       *string          `json:"invoiceID"`
	Notes           *string          `json:"notes" binding:"omitempty,max=500"`
}

// ToPatch converts the request into its domain patch.
func (r UpdatePaymentRequest) ToPatch() domain.PaymentPatch {
	return domain.PaymentPatch{
		Amount:          r.Amount,
		PaymentDate:     r.PaymentDate,
		PaymentMethod:   r.PaymentMethod,
		ReferenceNumber: r.ReferenceNumber,
		InvoiceID:       r.InvoiceID,
		Notes:           r.Notes,
	}
}

// ListPaymentsResponse is one page of payments.
type ListPaymentsResponse struct {
	Payments []domain.Payment `json:"payments"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
