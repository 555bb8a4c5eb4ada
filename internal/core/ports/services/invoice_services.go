package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, actor domain.Actor, filter portsrepo.InvoiceFilter, page pagination.Page) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// RecalculateInvoice recomputes the settlement of an invoice from its
	// linked payments. Running it twice yields the same state.
	RecalculateInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
