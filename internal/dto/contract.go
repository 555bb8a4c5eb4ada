package dto

import (
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest assigns a tenant to an apartment under a new contract.
type CreateContractRequest struct {
	TenantID    string           `json:"tenantID" binding:"required"`
	ApartmentID string           `json:"apartmentID" binding:"required"`
	OwnerID     *string          `json:"ownerID"`
	StartDate   time.Time        `json:"startDate" binding:"required"`
	EndDate     *time.Time       `json:"endDate"`
	MonthlyRent decimal.Decimal  `json:"monthlyRent" binding:"required"`
	Currency    string           `json:"currency" binding:"omitempty,len=3"`
	SecurityFee *decimal.Decimal `json:"securityFee"`
	Status      string           `json:"status" binding:"omitempty,oneof=Pending Active"`
}

// RenewContractRequest extends a contract to a new end date.
type RenewContractRequest struct {
	EndDate     time.Time        `json:"endDate" binding:"required"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent"`
}

// ToRenewal converts the request into its domain form.
func (r RenewContractRequest) ToRenewal() domain.ContractRenewal {
	return domain.ContractRenewal{NewEndDate: r.EndDate, NewMonthlyRent: r.MonthlyRent}
}

// ContractResponse is a contract with the schedule rows it currently owns.
type ContractResponse struct {
	Contract  domain.Contract          `json:"contract"`
	Schedules []domain.PaymentSchedule `json:"schedules"`
}

// ListSchedulesResponse wraps the schedule rows of a contract.
type ListSchedulesResponse struct {
	Schedules []domain.PaymentSchedule `json:"schedules"`
}
