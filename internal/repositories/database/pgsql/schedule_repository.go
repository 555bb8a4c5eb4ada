package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxScheduleRepository implements the payment schedule ports using pgx.
type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(base BaseRepository) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: base}
}

const scheduleColumns = `
	schedule_id, contract_id, tenant_id, apartment_id, payment_type, amount, due_date, status, transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSchedule(row pgx.Row) (models.PaymentSchedule, error) {
	var m models.PaymentSchedule
	err := row.Scan(
		&m.ScheduleID, &m.ContractID, &m.TenantID, &m.ApartmentID, &m.PaymentType,
		&m.Amount, &m.DueDate, &m.Status, &m.TransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// ListSchedulesByContract returns every schedule row of a contract ordered by due date.
func (r *PgxScheduleRepository) ListSchedulesByContract(ctx context.Context, contractID string) ([]domain.PaymentSchedule, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+scheduleColumns+`
		FROM payment_schedules
		WHERE contract_id = $1
		ORDER BY due_date, payment_type`, contractID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list schedules for contract "+contractID, err)
	}
	defer rows.Close()

	var ms []models.PaymentSchedule
	for rows.Next() {
		m, err := scanSchedule(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating schedule rows", err)
	}
	return mapping.ToDomainScheduleSlice(ms), nil
}

// FindScheduleByID retrieves a single schedule row.
func (r *PgxScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error) {
	m, err := scanSchedule(r.Pool.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM payment_schedules WHERE schedule_id = $1`, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("schedule " + scheduleID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find schedule by ID "+scheduleID, err)
	}
	s := mapping.ToDomainSchedule(m)
	return &s, nil
}

// SaveSchedules inserts all rows as one batch inside tx.
func (r *PgxScheduleRepository) SaveSchedules(ctx context.Context, tx pgx.Tx, schedules []domain.PaymentSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO payment_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, s := range schedules {
		m := mapping.ToModelSchedule(s)
		batch.Queue(query,
			m.ScheduleID, m.ContractID, m.TenantID, m.ApartmentID, m.PaymentType,
			m.Amount, m.DueDate, m.Status, m.TransactionID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "failed to insert schedule batch for contract "+schedules[0].ContractID)
	}
	return nil
}

// MarkSchedulePaid moves a Pending row to Paid and links the settling
// transaction. Re-marking with the same transaction is a no-op success.
func (r *PgxScheduleRepository) MarkSchedulePaid(ctx context.Context, tx pgx.Tx, scheduleID string, transactionID string, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE payment_schedules
		SET status = $3, transaction_id = $2, last_updated_at = $4, last_updated_by = $5
		WHERE schedule_id = $1 AND (status = $6 OR transaction_id = $2)`,
		scheduleID, transactionID, string(domain.SchedulePaid), now, userID, string(domain.SchedulePending),
	)
	if err != nil {
		return mapWriteError(err, "failed to mark schedule "+scheduleID+" paid")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewValidationError("schedule " + scheduleID + " does not exist or is already settled by another transaction")
	}
	return nil
}

// ReleaseSchedulesByTransaction moves rows settled by transactionID back to Pending.
func (r *PgxScheduleRepository) ReleaseSchedulesByTransaction(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE payment_schedules
		SET status = $2, transaction_id = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1`,
		transactionID, string(domain.SchedulePending), now, userID,
	)
	if err != nil {
		return 0, mapWriteError(err, "failed to release schedules of transaction "+transactionID)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteSchedulesByContract removes every schedule row of a contract.
func (r *PgxScheduleRepository) DeleteSchedulesByContract(ctx context.Context, tx pgx.Tx, contractID string) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM payment_schedules WHERE contract_id = $1`, contractID)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete schedules of contract "+contractID)
	}
	return cmdTag.RowsAffected(), nil
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)
