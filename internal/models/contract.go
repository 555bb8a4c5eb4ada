package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a row of the contracts table.
type Contract struct {
	ContractID  string           `db:"contract_id"`
	TenantID    string           `db:"tenant_id"`
	ApartmentID string           `db:"apartment_id"`
	OwnerID     *string          `db:"owner_id"`
	StartDate   time.Time        `db:"start_date"`
	EndDate     *time.Time       `db:"end_date"`
	MonthlyRent decimal.Decimal  `db:"monthly_rent"`
	Currency    string           `db:"currency"`
	SecurityFee *decimal.Decimal `db:"security_fee"`
	Status      string           `db:"status"`
	AuditFields
	BuildingID *string `db:"building_id"` // joined, not stored
}

// PaymentSchedule is a row of the payment_schedules table.
type PaymentSchedule struct {
	ScheduleID    string          `db:"schedule_id"`
	ContractID    string          `db:"contract_id"`
	TenantID      string          `db:"tenant_id"`
	ApartmentID   string          `db:"apartment_id"`
	PaymentType   string          `db:"payment_type"`
	Amount        decimal.Decimal `db:"amount"`
	DueDate       time.Time       `db:"due_date"`
	Status        string          `db:"status"`
	TransactionID *string         `db:"transaction_id"`
	AuditFields
}
