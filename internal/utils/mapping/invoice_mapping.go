package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:          d.InvoiceID,
		ContractID:         d.ContractID,
		TenantID:           d.TenantID,
		ApartmentID:        d.ApartmentID,
		InvoiceNumber:      d.InvoiceNumber,
		BillingPeriodStart: d.BillingPeriodStart,
		BillingPeriodEnd:   d.BillingPeriodEnd,
		DueDate:            d.DueDate,
		TotalAmount:        d.TotalAmount,
		AmountPaid:         d.AmountPaid,
		AmountDue:          d.AmountDue,
		Currency:           d.Currency,
		Status:             string(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:          m.InvoiceID,
		ContractID:         m.ContractID,
		TenantID:           m.TenantID,
		ApartmentID:        m.ApartmentID,
		InvoiceNumber:      m.InvoiceNumber,
		BillingPeriodStart: m.BillingPeriodStart,
		BillingPeriodEnd:   m.BillingPeriodEnd,
		DueDate:            m.DueDate,
		TotalAmount:        m.TotalAmount,
		AmountPaid:         m.AmountPaid,
		AmountDue:          m.AmountDue,
		Currency:           m.Currency,
		Status:             domain.InvoiceStatus(m.Status),
		BuildingID:         derefString(m.BuildingID),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		InvoiceID:        d.InvoiceID,
		ContractID:       d.ContractID,
		TenantID:         d.TenantID,
		PaymentDate:      d.PaymentDate,
		Amount:           d.Amount,
		PaymentMethod:    d.PaymentMethod,
		ReferenceNumber:  d.ReferenceNumber,
		IsAdvancePayment: d.IsAdvancePayment,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		InvoiceID:        m.InvoiceID,
		ContractID:       m.ContractID,
		TenantID:         m.TenantID,
		PaymentDate:      m.PaymentDate,
		Amount:           m.Amount,
		PaymentMethod:    m.PaymentMethod,
		ReferenceNumber:  m.ReferenceNumber,
		IsAdvancePayment: m.IsAdvancePayment,
		Notes:            m.Notes,
		BuildingID:       derefString(m.BuildingID),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
