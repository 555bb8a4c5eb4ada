package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// ScheduleGeneratorSvc derives payment schedule rows from contract terms.
type ScheduleGeneratorSvc interface {
	// GenerateMonthlyRentSchedule persists one Pending row per month of the
	// contract in a single retried unit of work and returns the stored rows.
	GenerateMonthlyRentSchedule(ctx context.Context, terms domain.ContractTerms, creatorUserID string) ([]domain.PaymentSchedule, error)

	// GenerateSecurityDepositSchedule persists the deposit row, or returns
	// nil without touching the store when there is no positive fee.
	GenerateSecurityDepositSchedule(ctx context.Context, terms domain.ContractTerms, creatorUserID string) (*domain.PaymentSchedule, error)
}

// ScheduleReaderSvc defines read operations for schedules
type ScheduleReaderSvc interface {
	// ListSchedules returns the schedule rows of a contract visible to actor.
	ListSchedules(ctx context.Context, actor domain.Actor, contractID string) ([]domain.PaymentSchedule, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleGeneratorSvc
	ScheduleReaderSvc
}
