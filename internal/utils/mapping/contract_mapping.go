package mapping

import (
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/models"
)

// ToModelContract converts a domain Contract to a model Contract
func ToModelContract(d domain.Contract) models.Contract {
	return models.Contract{
		ContractID:  d.ContractID,
		TenantID:    d.TenantID,
		ApartmentID: d.ApartmentID,
		OwnerID:     d.OwnerID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		MonthlyRent: d.MonthlyRent,
		Currency:    d.Currency,
		SecurityFee: d.SecurityFee,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContract converts a model Contract to a domain Contract
func ToDomainContract(m models.Contract) domain.Contract {
	return domain.Contract{
		ContractID:  m.ContractID,
		TenantID:    m.TenantID,
		ApartmentID: m.ApartmentID,
		OwnerID:     m.OwnerID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		MonthlyRent: m.MonthlyRent,
		Currency:    m.Currency,
		SecurityFee: m.SecurityFee,
		Status:      domain.ContractStatus(m.Status),
		BuildingID:  derefString(m.BuildingID),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSchedule converts a domain PaymentSchedule to a model PaymentSchedule
func ToModelSchedule(d domain.PaymentSchedule) models.PaymentSchedule {
	return models.PaymentSchedule{
		ScheduleID:    d.ScheduleID,
		ContractID:    d.ContractID,
		TenantID:      d.TenantID,
		ApartmentID:   d.ApartmentID,
		PaymentType:   string(d.PaymentType),
		Amount:        d.Amount,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchedule converts a model PaymentSchedule to a domain PaymentSchedule
func ToDomainSchedule(m models.PaymentSchedule) domain.PaymentSchedule {
	return domain.PaymentSchedule{
		ScheduleID:    m.ScheduleID,
		ContractID:    m.ContractID,
		TenantID:      m.TenantID,
		ApartmentID:   m.ApartmentID,
		PaymentType:   domain.ScheduleType(m.PaymentType),
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		Status:        domain.ScheduleStatus(m.Status),
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainScheduleSlice converts a slice of model schedules to domain schedules
func ToDomainScheduleSlice(ms []models.PaymentSchedule) []domain.PaymentSchedule {
	ds := make([]domain.PaymentSchedule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSchedule(m)
	}
	return ds
}
