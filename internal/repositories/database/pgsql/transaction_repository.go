package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository implements the financial transaction ports using pgx.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(base BaseRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: base}
}

const transactionColumns = `
	t.transaction_id, t.tenant_id, t.apartment_id, t.contract_id, t.schedule_id, t.related_transaction_id,
	t.transaction_type, t.amount, t.currency, t.payment_method, t.transaction_date, t.due_date,
	t.status, t.description, t.receipt_reference, t.processing_fee, t.late_fee,
	t.billing_period_start, t.billing_period_end, t.reference_number,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

// The display columns follow the tenant's current apartment, which is also
// what owner scoping is evaluated against.
const selectTransactionRecord = `
	SELECT ` + transactionColumns + `,
	       tn.name, a.apartment_number, f.floor_number, b.building_id, b.name
	FROM financial_transactions t
	LEFT JOIN tenants tn ON tn.tenant_id = t.tenant_id
	LEFT JOIN apartments a ON a.apartment_id = tn.apartment_id
	LEFT JOIN floors f ON f.floor_id = a.floor_id
	LEFT JOIN buildings b ON b.building_id = f.building_id`

var transactionScope = scopeColumns{Building: "b.building_id", CreatedBy: "t.created_by", ID: "t.transaction_id"}

func transactionScanTargets(m *models.FinancialTransaction) []any {
	return []any{
		&m.TransactionID, &m.TenantID, &m.ApartmentID, &m.ContractID, &m.ScheduleID, &m.RelatedTransactionID,
		&m.TransactionType, &m.Amount, &m.Currency, &m.PaymentMethod, &m.TransactionDate, &m.DueDate,
		&m.Status, &m.Description, &m.ReceiptReference, &m.ProcessingFee, &m.LateFee,
		&m.BillingPeriodStart, &m.BillingPeriodEnd, &m.ReferenceNumber,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	}
}

func scanTransactionRecord(row pgx.Row) (domain.TransactionRecord, error) {
	var m models.TransactionRecord
	targets := append(transactionScanTargets(&m.FinancialTransaction),
		&m.TenantName, &m.ApartmentNumber, &m.FloorNumber, &m.BuildingID, &m.BuildingName)
	if err := row.Scan(targets...); err != nil {
		return domain.TransactionRecord{}, err
	}
	return mapping.ToDomainTransactionRecord(m), nil
}

// FindTransactionByID retrieves a transaction joined with tenant and unit display fields.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	rec, err := scanTransactionRecord(r.Pool.QueryRow(ctx, selectTransactionRecord+` WHERE t.transaction_id = $1`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	return &rec, nil
}

// ListTransactions retrieves the transactions visible under scope, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, scope domain.AccessScope, filter portsrepo.TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error) {
	var w whereBuilder
	w.scope(scope, transactionScope)
	if filter.TenantID != "" {
		w.eq("t.tenant_id", filter.TenantID)
	}
	if filter.ContractID != "" {
		w.eq("t.contract_id", filter.ContractID)
	}
	if filter.Type != "" {
		w.eq("t.transaction_type", string(filter.Type))
	}
	if filter.Status != "" {
		w.eq("t.status", string(filter.Status))
	}
	query := selectTransactionRecord + w.String() +
		` ORDER BY t.transaction_date DESC, t.created_at DESC, t.transaction_id` + w.page(page.Limit, page.Offset)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	records := []domain.TransactionRecord{}
	for rows.Next() {
		rec, err := scanTransactionRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return records, nil
}

// SaveTransaction inserts a transaction inside tx.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := tx.Exec(ctx, `
		INSERT INTO financial_transactions (
			transaction_id, tenant_id, apartment_id, contract_id, schedule_id, related_transaction_id,
			transaction_type, amount, currency, payment_method, transaction_date, due_date,
			status, description, receipt_reference, processing_fee, late_fee,
			billing_period_start, billing_period_end, reference_number,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		m.TransactionID, m.TenantID, m.ApartmentID, m.ContractID, m.ScheduleID, m.RelatedTransactionID,
		m.TransactionType, m.Amount, m.Currency, m.PaymentMethod, m.TransactionDate, m.DueDate,
		m.Status, m.Description, m.ReceiptReference, m.ProcessingFee, m.LateFee,
		m.BillingPeriodStart, m.BillingPeriodEnd, m.ReferenceNumber,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save transaction "+m.TransactionID)
	}
	return nil
}

// FindTransactionForUpdate locks the transaction row inside tx.
func (r *PgxTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.FinancialTransaction, error) {
	var m models.FinancialTransaction
	err := tx.QueryRow(ctx, `SELECT `+transactionColumns+`
		FROM financial_transactions t
		WHERE t.transaction_id = $1
		FOR UPDATE`, transactionID).Scan(transactionScanTargets(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, mapWriteError(err, "failed to lock transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// UpdateTransaction writes the mutable fields of txn.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error {
	m := mapping.ToModelTransaction(txn)
	cmdTag, err := tx.Exec(ctx, `
		UPDATE financial_transactions
		SET status = $2, description = $3, receipt_reference = $4, processing_fee = $5,
		    late_fee = $6, reference_number = $7, transaction_date = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1`,
		m.TransactionID, m.Status, m.Description, m.ReceiptReference, m.ProcessingFee,
		m.LateFee, m.ReferenceNumber, m.TransactionDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update transaction "+m.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + m.TransactionID + " not found")
	}
	return nil
}

// DeleteTransaction removes the transaction row and reports whether it existed.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM financial_transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return false, mapWriteError(err, "failed to delete transaction "+transactionID)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// SumRefunds totals the non-failed refunds recorded against an original transaction.
func (r *PgxTransactionRepository) SumRefunds(ctx context.Context, tx pgx.Tx, originalTransactionID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM financial_transactions
		WHERE related_transaction_id = $1 AND transaction_type = $2 AND status <> $3`,
		originalTransactionID, string(domain.Refund), string(domain.TransactionFailed),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, mapWriteError(err, "failed to sum refunds of transaction "+originalTransactionID)
	}
	return total, nil
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)
