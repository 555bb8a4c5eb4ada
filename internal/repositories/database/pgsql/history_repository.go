package pgsql

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// PgxHistoryRepository keeps the tenant_payment_history projection.
type PgxHistoryRepository struct {
	BaseRepository
}

func newPgxHistoryRepository(base BaseRepository) portsrepo.HistoryRepository {
	return &PgxHistoryRepository{BaseRepository: base}
}

var historyScope = scopeColumns{Building: "f.building_id", CreatedBy: "h.created_by", ID: "h.transaction_id"}

// UpsertHistory inserts the history row of a transaction or refreshes the
// existing one. There is at most one row per transaction.
func (r *PgxHistoryRepository) UpsertHistory(ctx context.Context, tx pgx.Tx, history domain.TenantPaymentHistory) error {
	m := mapping.ToModelHistory(history)
	_, err := tx.Exec(ctx, `
		INSERT INTO tenant_payment_history (
			history_id, tenant_id, apartment_id, contract_id, transaction_id, payment_month, payment_date,
			rent_amount, late_fee, total_paid, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (transaction_id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			apartment_id = EXCLUDED.apartment_id,
			contract_id = EXCLUDED.contract_id,
			payment_month = EXCLUDED.payment_month,
			payment_date = EXCLUDED.payment_date,
			rent_amount = EXCLUDED.rent_amount,
			late_fee = EXCLUDED.late_fee,
			total_paid = EXCLUDED.total_paid,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		m.HistoryID, m.TenantID, m.ApartmentID, m.ContractID, m.TransactionID, m.PaymentMonth, m.PaymentDate,
		m.RentAmount, m.LateFee, m.TotalPaid, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to upsert payment history for transaction "+m.TransactionID)
	}
	return nil
}

// DeleteHistoryByTransaction removes the history rows derived from a transaction.
func (r *PgxHistoryRepository) DeleteHistoryByTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM tenant_payment_history WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return 0, mapWriteError(err, "failed to delete payment history for transaction "+transactionID)
	}
	return cmdTag.RowsAffected(), nil
}

// ListHistory retrieves history rows visible under scope, newest month first.
func (r *PgxHistoryRepository) ListHistory(ctx context.Context, scope domain.AccessScope, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error) {
	var w whereBuilder
	w.scope(scope, historyScope)
	if tenantID != "" {
		w.eq("h.tenant_id", tenantID)
	}
	query := `
		SELECT h.history_id, h.tenant_id, h.apartment_id, h.contract_id, h.transaction_id,
		       h.payment_month, h.payment_date, h.rent_amount, h.late_fee, h.total_paid, h.status,
		       h.created_at, h.created_by, h.last_updated_at, h.last_updated_by
		FROM tenant_payment_history h
		LEFT JOIN tenants tn ON tn.tenant_id = h.tenant_id
		LEFT JOIN apartments a ON a.apartment_id = tn.apartment_id
		LEFT JOIN floors f ON f.floor_id = a.floor_id` + w.String() +
		` ORDER BY h.payment_month DESC, h.payment_date DESC, h.history_id` + w.page(page.Limit, page.Offset)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payment history", err)
	}
	defer rows.Close()

	history := []domain.TenantPaymentHistory{}
	for rows.Next() {
		var m models.TenantPaymentHistory
		if err := rows.Scan(
			&m.HistoryID, &m.TenantID, &m.ApartmentID, &m.ContractID, &m.TransactionID,
			&m.PaymentMonth, &m.PaymentDate, &m.RentAmount, &m.LateFee, &m.TotalPaid, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment history row", err)
		}
		history = append(history, mapping.ToDomainHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment history rows", err)
	}
	return history, nil
}

var _ portsrepo.HistoryRepository = (*PgxHistoryRepository)(nil)
