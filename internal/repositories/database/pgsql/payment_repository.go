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
)

// PgxPaymentRepository implements the payment ports using pgx.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(base BaseRepository) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: base}
}

const selectPayment = `
	SELECT p.payment_id, p.invoice_id, p.contract_id, p.tenant_id, p.payment_date, p.amount,
	       p.payment_method, p.reference_number, p.is_advance_payment, p.notes,
	       p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
	       f.building_id
	FROM payments p
	LEFT JOIN tenants tn ON tn.tenant_id = p.tenant_id
	LEFT JOIN apartments a ON a.apartment_id = tn.apartment_id
	LEFT JOIN floors f ON f.floor_id = a.floor_id`

var paymentScope = scopeColumns{Building: "f.building_id", CreatedBy: "p.created_by"}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.InvoiceID, &m.ContractID, &m.TenantID, &m.PaymentDate, &m.Amount,
		&m.PaymentMethod, &m.ReferenceNumber, &m.IsAdvancePayment, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.BuildingID,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	return mapping.ToDomainPayment(m), nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	p, err := scanPayment(r.Pool.QueryRow(ctx, selectPayment+` WHERE p.payment_id = $1`, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	return &p, nil
}

// ListPayments retrieves the payments visible under scope, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, scope domain.AccessScope, filter portsrepo.PaymentFilter, page pagination.Page) ([]domain.Payment, error) {
	var w whereBuilder
	w.scope(scope, paymentScope)
	if filter.TenantID != "" {
		w.eq("p.tenant_id", filter.TenantID)
	}
	if filter.ContractID != "" {
		w.eq("p.contract_id", filter.ContractID)
	}
	if filter.InvoiceID != "" {
		w.eq("p.invoice_id", filter.InvoiceID)
	}
	query := selectPayment + w.String() + ` ORDER BY p.payment_date DESC, p.payment_id` + w.page(page.Limit, page.Offset)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

// SavePayment inserts a new payment inside tx.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := tx.Exec(ctx, `
		INSERT INTO payments (
			payment_id, invoice_id, contract_id, tenant_id, payment_date, amount,
			payment_method, reference_number, is_advance_payment, notes,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.PaymentID, m.InvoiceID, m.ContractID, m.TenantID, m.PaymentDate, m.Amount,
		m.PaymentMethod, m.ReferenceNumber, m.IsAdvancePayment, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save payment "+m.PaymentID)
	}
	return nil
}

// FindPaymentForUpdate locks the payment row inside tx.
func (r *PgxPaymentRepository) FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	p, err := scanPayment(tx.QueryRow(ctx, selectPayment+` WHERE p.payment_id = $1 FOR UPDATE OF p`, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
		}
		return nil, mapWriteError(err, "failed to lock payment "+paymentID)
	}
	return &p, nil
}

// UpdatePayment writes the mutable fields of payment.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	cmdTag, err := tx.Exec(ctx, `
		UPDATE payments
		SET invoice_id = $2, payment_date = $3, amount = $4, payment_method = $5,
		    reference_number = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE payment_id = $1`,
		m.PaymentID, m.InvoiceID, m.PaymentDate, m.Amount, m.PaymentMethod,
		m.ReferenceNumber, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update payment "+m.PaymentID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + m.PaymentID + " not found")
	}
	return nil
}

// DeletePayment removes the payment row and reports whether it existed.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1`, paymentID)
	if err != nil {
		return false, mapWriteError(err, "failed to delete payment "+paymentID)
	}
	return cmdTag.RowsAffected() > 0, nil
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)
