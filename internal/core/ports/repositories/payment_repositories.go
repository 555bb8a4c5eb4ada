package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// PaymentFilter narrows payment listings beyond the access scope.
type PaymentFilter struct {
	TenantID   string
	ContractID string
	InvoiceID  string
}

// PaymentReader defines read operations for payments
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, scope domain.AccessScope, filter PaymentFilter, page pagination.Page) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments
type PaymentWriter interface {
	SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	DeletePayment(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
