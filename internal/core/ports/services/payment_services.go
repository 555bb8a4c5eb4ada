package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, actor domain.Actor, filter portsrepo.PaymentFilter, page pagination.Page) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for payments. Each one
// reconciles every invoice it touches before committing.
type PaymentWriterSvc interface {
	RecordPayment(ctx context.Context, actor domain.Actor, req dto.RecordPaymentRequest) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, patch domain.PaymentPatch) (*domain.Payment, error)
	DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) (bool, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
