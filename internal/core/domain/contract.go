package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus tracks where a rental contract is in its lifecycle.
type ContractStatus string

const (
	ContractPending    ContractStatus = "Pending"
	ContractActive     ContractStatus = "Active"
	ContractExpired    ContractStatus = "Expired"
	ContractTerminated ContractStatus = "Terminated"
)

// Contract binds a tenant to an apartment for a period at a monthly rent.
type Contract struct {
	ContractID  string           `json:"contractID"`
	TenantID    string           `json:"tenantID"`
	ApartmentID string           `json:"apartmentID"`
	OwnerID     *string          `json:"ownerID,omitempty"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	MonthlyRent decimal.Decimal  `json:"monthlyRent"`
	Currency    string           `json:"currency"`
	SecurityFee *decimal.Decimal `json:"securityFee,omitempty"`
	Status      ContractStatus   `json:"status"`
	BuildingID  string           `json:"buildingID,omitempty"`
	AuditFields
}

// ScopeFacts returns the ownership facts used for access checks.
func (c Contract) ScopeFacts() ScopeFacts {
	return ScopeFacts{BuildingID: c.BuildingID, CreatedBy: c.CreatedBy, RowID: c.ContractID}
}

// Validate checks the contract's own invariants.
func (c Contract) Validate() error {
	if c.TenantID == "" || c.ApartmentID == "" {
		return fmt.Errorf("contract requires a tenant and an apartment")
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("contract start date is required")
	}
	if c.EndDate != nil && DateOnly(*c.EndDate).Before(DateOnly(c.StartDate)) {
		return fmt.Errorf("contract end date %s precedes start date %s",
			c.EndDate.Format(time.DateOnly), c.StartDate.Format(time.DateOnly))
	}
	if !c.MonthlyRent.IsPositive() {
		return fmt.Errorf("monthly rent must be positive")
	}
	switch c.Status {
	case ContractPending, ContractActive, ContractExpired, ContractTerminated:
	default:
		return fmt.Errorf("unknown contract status %q", c.Status)
	}
	return nil
}

// Terms returns the schedule-relevant part of the contract.
func (c Contract) Terms() ContractTerms {
	t := ContractTerms{
		ContractID:  c.ContractID,
		TenantID:    c.TenantID,
		ApartmentID: c.ApartmentID,
		StartDate:   c.StartDate,
		RentAmount:  c.MonthlyRent,
		SecurityFee: c.SecurityFee,
	}
	if c.EndDate != nil {
		t.EndDate = *c.EndDate
	}
	return t
}

// ContractTerms is the input of schedule generation.
type ContractTerms struct {
	ContractID  string
	TenantID    string
	ApartmentID string
	StartDate   time.Time
	EndDate     time.Time
	RentAmount  decimal.Decimal
	SecurityFee *decimal.Decimal
}

// ContractRenewal extends a contract. A nil rent keeps the current one.
type ContractRenewal struct {
	NewEndDate     time.Time
	NewMonthlyRent *decimal.Decimal
}
