package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleType is the kind of obligation a schedule row represents.
type ScheduleType string

const (
	ScheduleMonthlyRent     ScheduleType = "Monthly Rent"
	ScheduleSecurityDeposit ScheduleType = "Security Deposit"
)

// ScheduleStatus is Pending until a completed transaction settles the row.
type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "Pending"
	SchedulePaid    ScheduleStatus = "Paid"
)

// DefaultRentDueDay is the day of month on which rent falls due.
const DefaultRentDueDay = 5

// PaymentSchedule is one expected future payment derived from a contract.
type PaymentSchedule struct {
	ScheduleID    string          `json:"scheduleID"`
	ContractID    string          `json:"contractID"`
	TenantID      string          `json:"tenantID"`
	ApartmentID   string          `json:"apartmentID"`
	PaymentType   ScheduleType    `json:"paymentType"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	Status        ScheduleStatus  `json:"status"`
	TransactionID *string         `json:"transactionID,omitempty"`
	AuditFields
}

// BuildMonthlyRentSchedule lays out one Pending rent row per calendar month
// from the month of StartDate through EndDate, each due on dueDay. Months
// whose due date falls outside [StartDate, EndDate] are skipped.
func BuildMonthlyRentSchedule(terms ContractTerms, dueDay int) ([]PaymentSchedule, error) {
	if dueDay < 1 || dueDay > 28 {
		return nil, fmt.Errorf("due day %d out of range 1..28", dueDay)
	}
	if !terms.RentAmount.IsPositive() {
		return nil, fmt.Errorf("rent amount must be positive")
	}
	if terms.StartDate.IsZero() || terms.EndDate.IsZero() {
		return nil, fmt.Errorf("monthly schedule requires both start and end dates")
	}
	start := DateOnly(terms.StartDate)
	end := DateOnly(terms.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	var rows []PaymentSchedule
	for month := MonthStart(start); !month.After(end); month = month.AddDate(0, 1, 0) {
		due := month.AddDate(0, 0, dueDay-1)
		if due.After(end) || due.Before(start) {
			continue
		}
		rows = append(rows, PaymentSchedule{
			ContractID:  terms.ContractID,
			TenantID:    terms.TenantID,
			ApartmentID: terms.ApartmentID,
			PaymentType: ScheduleMonthlyRent,
			Amount:      terms.RentAmount,
			DueDate:     due,
			Status:      SchedulePending,
		})
	}
	return rows, nil
}

// BuildSecurityDepositSchedule returns the single deposit row due on the
// start date, or nil when the contract carries no positive security fee.
func BuildSecurityDepositSchedule(terms ContractTerms) *PaymentSchedule {
	if terms.SecurityFee == nil || !terms.SecurityFee.IsPositive() {
		return nil
	}
	return &PaymentSchedule{
		ContractID:  terms.ContractID,
		TenantID:    terms.TenantID,
		ApartmentID: terms.ApartmentID,
		PaymentType: ScheduleSecurityDeposit,
		Amount:      *terms.SecurityFee,
		DueDate:     DateOnly(terms.StartDate),
		Status:      SchedulePending,
	}
}
