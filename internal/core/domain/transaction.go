package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies why money moved.
type TransactionType string

const (
	RentPayment            TransactionType = "Rent Payment"
	SecurityDepositPayment TransactionType = "Security Deposit"
	MaintenanceFee         TransactionType = "Maintenance Fee"
	UtilityPayment         TransactionType = "Utility Payment"
	LateFeePayment         TransactionType = "Late Fee"
	Refund                 TransactionType = "Refund"
	OtherPayment           TransactionType = "Other"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case RentPayment, SecurityDepositPayment, MaintenanceFee, UtilityPayment, LateFeePayment, Refund, OtherPayment:
		return true
	}
	return false
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionFailed    TransactionStatus = "Failed"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionFailed:
		return true
	}
	return false
}

// FinancialTransaction records money actually moving, or attempting to.
type FinancialTransaction struct {
	TransactionID        string            `json:"transactionID"`
	TenantID             string            `json:"tenantID"`
	ApartmentID          string            `json:"apartmentID"`
	ContractID           *string           `json:"contractID,omitempty"`
	ScheduleID           *string           `json:"scheduleID,omitempty"`
	RelatedTransactionID *string           `json:"relatedTransactionID,omitempty"`
	Type                 TransactionType   `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	Currency             string            `json:"currency"`
	PaymentMethod        string            `json:"paymentMethod"`
	TransactionDate      time.Time         `json:"transactionDate"`
	DueDate              *time.Time        `json:"dueDate,omitempty"`
	Status               TransactionStatus `json:"status"`
	Description          string            `json:"description"`
	ReceiptReference     *string           `json:"receiptReference,omitempty"`
	ProcessingFee        decimal.Decimal   `json:"processingFee"`
	LateFee              decimal.Decimal   `json:"lateFee"`
	BillingPeriodStart   *time.Time        `json:"billingPeriodStart,omitempty"`
	BillingPeriodEnd     *time.Time        `json:"billingPeriodEnd,omitempty"`
	ReferenceNumber      string            `json:"referenceNumber"`
	AuditFields
}

// SettlesRent reports whether the transaction is a completed rent payment,
// the only kind that is projected into payment history.
func (t FinancialTransaction) SettlesRent() bool {
	return t.Type == RentPayment && t.Status == TransactionCompleted
}

// Validate checks a fully normalized transaction before it is written.
func (t FinancialTransaction) Validate() error {
	if t.TenantID == "" || t.ApartmentID == "" {
		return errors.New("transaction requires a tenant and an apartment")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown transaction status %q", t.Status)
	}
	if !t.Amount.IsPositive() {
		return errors.New("transaction amount must be positive")
	}
	if t.ProcessingFee.IsNegative() || t.LateFee.IsNegative() {
		return errors.New("fees cannot be negative")
	}
	if t.LateFee.GreaterThan(t.Amount) {
		return errors.New("late fee cannot exceed the transaction amount")
	}
	if t.BillingPeriodStart != nil && t.BillingPeriodEnd != nil && t.BillingPeriodEnd.Before(*t.BillingPeriodStart) {
		return errors.New("billing period end precedes its start")
	}
	return nil
}

// DeriveHistory projects a completed rent payment into its history row.
func (t FinancialTransaction) DeriveHistory() TenantPaymentHistory {
	month := t.TransactionDate
	if t.BillingPeriodStart != nil {
		month = *t.BillingPeriodStart
	}
	status := HistoryOnTime
	if t.LateFee.IsPositive() {
		status = HistoryLate
	}
	return TenantPaymentHistory{
		TenantID:      t.TenantID,
		ApartmentID:   t.ApartmentID,
		ContractID:    t.ContractID,
		TransactionID: t.TransactionID,
		PaymentMonth:  MonthStart(month),
		PaymentDate:   DateOnly(t.TransactionDate),
		RentAmount:    t.Amount.Sub(t.LateFee),
		LateFee:       t.LateFee,
		TotalPaid:     t.Amount,
		Status:        status,
	}
}

// TransactionRecord is a transaction joined with tenant and unit display fields.
type TransactionRecord struct {
	FinancialTransaction
	TenantName      string `json:"tenantName"`
	ApartmentNumber string `json:"apartmentNumber"`
	FloorNumber     string `json:"floorNumber"`
	BuildingID      string `json:"buildingID"`
	BuildingName    string `json:"buildingName"`
}

// ScopeFacts returns the ownership facts used for access checks.
func (r TransactionRecord) ScopeFacts() ScopeFacts {
	return ScopeFacts{BuildingID: r.BuildingID, CreatedBy: r.CreatedBy, RowID: r.TransactionID}
}

// TransactionPatch enumerates the mutable fields of a transaction.
// A nil field is left untouched.
type TransactionPatch struct {
	Status           *TransactionStatus
	Description      *string
	ReceiptReference *string
	ProcessingFee    *decimal.Decimal
	LateFee          *decimal.Decimal
	ReferenceNumber  *string
	TransactionDate  *time.Time
}

// IsEmpty reports whether the patch names no field at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Status == nil && p.Description == nil && p.ReceiptReference == nil &&
		p.ProcessingFee == nil && p.LateFee == nil && p.ReferenceNumber == nil && p.TransactionDate == nil
}

// Validate checks the patched values in isolation.
func (p TransactionPatch) Validate() error {
	if p.IsEmpty() {
		return errors.New("no updatable fields supplied")
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("unknown transaction status %q", *p.Status)
	}
	if p.ProcessingFee != nil && p.ProcessingFee.IsNegative() {
		return errors.New("processing fee cannot be negative")
	}
	if p.LateFee != nil && p.LateFee.IsNegative() {
		return errors.New("late fee cannot be negative")
	}
	if p.ReferenceNumber != nil && *p.ReferenceNumber == "" {
		return errors.New("reference number cannot be blank")
	}
	if p.TransactionDate != nil && p.TransactionDate.IsZero() {
		return errors.New("transaction date cannot be zero")
	}
	return nil
}

// ApplyTo copies the patched fields onto t.
func (p TransactionPatch) ApplyTo(t *FinancialTransaction) {
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ReceiptReference != nil {
		t.ReceiptReference = p.ReceiptReference
	}
	if p.ProcessingFee != nil {
		t.ProcessingFee = *p.ProcessingFee
	}
	if p.LateFee != nil {
		t.LateFee = *p.LateFee
	}
	if p.ReferenceNumber != nil {
		t.ReferenceNumber = *p.ReferenceNumber
	}
	if p.TransactionDate != nil {
		t.TransactionDate = *p.TransactionDate
	}
}
