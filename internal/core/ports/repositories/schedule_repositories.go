package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ScheduleReader defines read operations for payment schedules
type ScheduleReader interface {
	// ListSchedulesByContract returns every schedule row of a contract ordered by due date.
	ListSchedulesByContract(ctx context.Context, contractID string) ([]domain.PaymentSchedule, error)

	// FindScheduleByID retrieves a single schedule row.
	FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error)
}

// ScheduleWriter defines write operations for payment schedules
type ScheduleWriter interface {
	// SaveSchedules inserts all rows as one batch inside tx.
	SaveSchedules(ctx context.Context, tx pgx.Tx, schedules []domain.PaymentSchedule) error

	// MarkSchedulePaid moves a Pending row to Paid and links the settling transaction.
	MarkSchedulePaid(ctx context.Context, tx pgx.Tx, scheduleID string, transactionID string, userID string, now time.Time) error

	// ReleaseSchedulesByTransaction moves rows settled by transactionID back to Pending.
	ReleaseSchedulesByTransaction(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) (int64, error)

	// DeleteSchedulesByContract removes every schedule row of a contract.
	DeleteSchedulesByContract(ctx context.Context, tx pgx.Tx, contractID string) (int64, error)
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
}
