package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelTransaction converts a domain FinancialTransaction to a model FinancialTransaction
func ToModelTransaction(d domain.FinancialTransaction) models.FinancialTransaction {
	return models.FinancialTransaction{
		TransactionID:        d.TransactionID,
		TenantID:             d.TenantID,
		ApartmentID:          d.ApartmentID,
		ContractID:           d.ContractID,
		ScheduleID:           d.ScheduleID,
		RelatedTransactionID: d.RelatedTransactionID,
		TransactionType:      string(d.Type),
		Amount:               d.Amount,
		Currency:             d.Currency,
		PaymentMethod:        d.PaymentMethod,
		TransactionDate:      d.TransactionDate,
		DueDate:              d.DueDate,
		Status:               string(d.Status),
		Description:          d.Description,
		ReceiptReference:     d.ReceiptReference,
		ProcessingFee:        d.ProcessingFee,
		LateFee:              d.LateFee,
		BillingPeriodStart:   d.BillingPeriodStart,
		BillingPeriodEnd:     d.BillingPeriodEnd,
		ReferenceNumber:      d.ReferenceNumber,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model FinancialTransaction to a domain FinancialTransaction
func ToDomainTransaction(m models.FinancialTransaction) domain.FinancialTransaction {
	return domain.FinancialTransaction{
		TransactionID:        m.TransactionID,
		TenantID:             m.TenantID,
		ApartmentID:          m.ApartmentID,
		ContractID:           m.ContractID,
		ScheduleID:           m.ScheduleID,
		RelatedTransactionID: m.RelatedTransactionID,
		Type:                 domain.TransactionType(m.TransactionType),
		Amount:               m.Amount,
		Currency:             m.Currency,
		PaymentMethod:        m.PaymentMethod,
		TransactionDate:      m.TransactionDate,
		DueDate:              m.DueDate,
		Status:               domain.TransactionStatus(m.Status),
		Description:          m.Description,
		ReceiptReference:     m.ReceiptReference,
		ProcessingFee:        m.ProcessingFee,
		LateFee:              m.LateFee,
		BillingPeriodStart:   m.BillingPeriodStart,
		BillingPeriodEnd:     m.BillingPeriodEnd,
		ReferenceNumber:      m.ReferenceNumber,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionRecord converts a joined model record to its domain form
func ToDomainTransactionRecord(m models.TransactionRecord) domain.TransactionRecord {
	return domain.TransactionRecord{
		FinancialTransaction: ToDomainTransaction(m.FinancialTransaction),
		TenantName:           derefString(m.TenantName),
		ApartmentNumber:      derefString(m.ApartmentNumber),
		FloorNumber:          derefString(m.FloorNumber),
		BuildingID:           derefString(m.BuildingID),
		BuildingName:         derefString(m.BuildingName),
	}
}

// ToModelHistory converts a domain TenantPaymentHistory to a model TenantPaymentHistory
func ToModelHistory(d domain.TenantPaymentHistory) models.TenantPaymentHistory {
	return models.TenantPaymentHistory{
		HistoryID:     d.HistoryID,
		TenantID:      d.TenantID,
		ApartmentID:   d.ApartmentID,
		ContractID:    d.ContractID,
		TransactionID: d.TransactionID,
		PaymentMonth:  d.PaymentMonth,
		PaymentDate:   d.PaymentDate,
		RentAmount:    d.RentAmount,
		LateFee:       d.LateFee,
		TotalPaid:     d.TotalPaid,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHistory converts a model TenantPaymentHistory to a domain TenantPaymentHistory
func ToDomainHistory(m models.TenantPaymentHistory) domain.TenantPaymentHistory {
	return domain.TenantPaymentHistory{
		HistoryID:     m.HistoryID,
		TenantID:      m.TenantID,
		ApartmentID:   m.ApartmentID,
		ContractID:    m.ContractID,
		TransactionID: m.TransactionID,
		PaymentMonth:  m.PaymentMonth,
		PaymentDate:   m.PaymentDate,
		RentAmount:    m.RentAmount,
		LateFee:       m.LateFee,
		TotalPaid:     m.TotalPaid,
		Status:        domain.HistoryStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
