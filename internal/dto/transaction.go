package dto

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the intake of a financial transaction.
// Optional fields are normalized to explicit defaults by the service.
type CreateTransactionRequest struct {
	TenantID           string           `json:"tenantID" binding:"required"`
	ApartmentID        string           `json:"apartmentID" binding:"required"`
	ContractID         *string          `json:"contractID"`
	ScheduleID         *string          `json:"scheduleID"`
	Type               string           `json:"type" binding:"required"`
	Amount             decimal.Decimal  `json:"amount" binding:"required"`
	Currency           string           `json:"currency" binding:"omitempty,len=3"`
	PaymentMethod      string           `json:"paymentMethod"`
	TransactionDate    *time.Time       `json:"transactionDate"`
	DueDate            *time.Time       `json:"dueDate"`
	Status             string           `json:"status" binding:"omitempty,oneof=Pending Completed Failed"`
	Description        string           `json:"description" binding:"max=500"`
	ReceiptReference   *string          `json:"receiptReference"`
	ProcessingFee      *decimal.Decimal `json:"processingFee"`
	LateFee            *decimal.Decimal `json:"lateFee"`
	BillingPeriodStart *time.Time       `json:"billingPeriodStart"`
	BillingPeriodEnd   *time.Time       `json:"billingPeriodEnd"`
	ReferenceNumber    string           `json:"referenceNumber" binding:"max=64"`
}

// UpdateTransactionRequest lists exactly the mutable fields of a transaction.
// Handlers decode it with unknown fields disallowed.
type UpdateTransactionRequest struct {
	Status           *string          `json:"status" binding:"omitempty,oneof=Pending Completed Failed"`
	Description      *string          `json:"description" binding:"omitempty,max=500"`
	ReceiptReference *string          `json:"receiptReference"`
	ProcessingFee    *decimal.Decimal `json:"processingFee"`
	LateFee          *decimal.Decimal `json:"lateFee"`
	ReferenceNumber  *string          `json:"referenceNumber" binding:"omitempty,max=64"`
	TransactionDate  *time.Time       `json:"transactionDate"`
}

// ToPatch converts the request into its domain patch.
func (r UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	patch := domain.TransactionPatch{
		Description:      r.Description,
		ReceiptReference: r.ReceiptReference,
		ProcessingFee:    r.ProcessingFee,
		LateFee:          r.LateFee,
		ReferenceNumber:  r.ReferenceNumber,
		TransactionDate:  r.TransactionDate,
	}
	if r.Status != nil {
		status := domain.TransactionStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// RefundTransactionRequest refunds part or all of a completed transaction.
type RefundTransactionRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required,max=500"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.TransactionRecord `json:"transactions"`
	Limit        int                        `json:"limit"`
	Offset       int                        `json:"offset"`
}

// ListPaymentHistoryResponse is one page of payment history rows.
type ListPaymentHistoryResponse struct {
	History []domain.TenantPaymentHistory `json:"history"`
	Limit   int                           `json:"limit"`
	Offset  int                           `json:"offset"`
}
