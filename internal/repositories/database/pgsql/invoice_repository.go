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
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxInvoiceRepository implements the invoice ports using pgx.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(base BaseRepository) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: base}
}

const selectInvoice = `
	SELECT i.invoice_id, i.contract_id, i.tenant_id, i.apartment_id, i.invoice_number,
	       i.billing_period_start, i.billing_period_end, i.due_date,
	       i.total_amount, i.amount_paid, i.amount_due, i.currency, i.status,
	       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by,
	       f.building_id
	FROM invoices i
	LEFT JOIN tenants tn ON tn.tenant_id = i.tenant_id
	LEFT JOIN apartments a ON a.apartment_id = tn.apartment_id
	LEFT JOIN floors f ON f.floor_id = a.floor_id`

var invoiceScope = scopeColumns{Building: "f.building_id", CreatedBy: "i.created_by"}

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.ContractID, &m.TenantID, &m.ApartmentID, &m.InvoiceNumber,
		&m.BillingPeriodStart, &m.BillingPeriodEnd, &m.DueDate,
		&m.TotalAmount, &m.AmountPaid, &m.AmountDue, &m.Currency, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.BuildingID,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m), nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, selectInvoice+` WHERE i.invoice_id = $1`, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}
	return &inv, nil
}

// ListInvoices retrieves the invoices visible under scope, latest due date first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, scope domain.AccessScope, filter portsrepo.InvoiceFilter, page pagination.Page) ([]domain.Invoice, error) {
	var w whereBuilder
	w.scope(scope, invoiceScope)
	if filter.TenantID != "" {
		w.eq("i.tenant_id", filter.TenantID)
	}
	if filter.ContractID != "" {
		w.eq("i.contract_id", filter.ContractID)
	}
	if filter.Status != "" {
		w.eq("i.status", string(filter.Status))
	}
	query := selectInvoice + w.String() + ` ORDER BY i.due_date DESC, i.invoice_id` + w.page(page.Limit, page.Offset)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}

// SaveInvoice inserts a new invoice inside tx.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := tx.Exec(ctx, `
		INSERT INTO invoices (
			invoice_id, contract_id, tenant_id, apartment_id, invoice_number,
			billing_period_start, billing_period_end, due_date,
			total_amount, amount_paid, amount_due, currency, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.InvoiceID, m.ContractID, m.TenantID, m.ApartmentID, m.InvoiceNumber,
		m.BillingPeriodStart, m.BillingPeriodEnd, m.DueDate,
		m.TotalAmount, m.AmountPaid, m.AmountDue, m.Currency, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save invoice "+m.InvoiceNumber)
	}
	return nil
}

// FindInvoiceForUpdate locks the invoice row inside tx.
func (r *PgxInvoiceRepository) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	inv, err := scanInvoice(tx.QueryRow(ctx, selectInvoice+` WHERE i.invoice_id = $1 FOR UPDATE OF i`, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
		}
		return nil, mapWriteError(err, "failed to lock invoice "+invoiceID)
	}
	return &inv, nil
}

// SumPaymentsForInvoice totals every payment currently linked to the invoice.
func (r *PgxInvoiceRepository) SumPaymentsForInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, invoiceID).Scan(&total)
	if err != nil {
		return decimal.Zero, mapWriteError(err, "failed to sum payments of invoice "+invoiceID)
	}
	return total, nil
}

// UpdateInvoiceSettlement writes the derived payment state of an invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceSettlement(ctx context.Context, tx pgx.Tx, invoiceID string, settlement domain.Settlement, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET amount_paid = $2, amount_due = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1`,
		invoiceID, settlement.TotalPaid, settlement.AmountDue, string(settlement.Status), now, userID,
	)
	if err != nil {
		return mapWriteError(err, "failed to update settlement of invoice "+invoiceID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return nil
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)
