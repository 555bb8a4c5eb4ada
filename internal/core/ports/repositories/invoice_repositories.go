package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows invoice listings beyond the access scope.
type InvoiceFilter struct {
	TenantID   string
	ContractID string
	Status     domain.InvoiceStatus
}

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, scope domain.AccessScope, filter InvoiceFilter, page pagination.Page) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// FindInvoiceForUpdate locks the invoice row so concurrent payment writes
	// against it serialize their recomputation.
	FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// SumPaymentsForInvoice totals every payment currently linked to the invoice.
	SumPaymentsForInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error)

	UpdateInvoiceSettlement(ctx context.Context, tx pgx.Tx, invoiceID string, settlement domain.Settlement, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
