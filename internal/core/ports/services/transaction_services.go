package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
)

// TransactionReaderSvc defines read operations for financial transactions
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.TransactionRecord, error)
	ListTransactions(ctx context.Context, actor domain.Actor, filter portsrepo.TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error)
	ListPaymentHistory(ctx context.Context, actor domain.Actor, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error)
}

// TransactionWriterSvc defines write operations for financial transactions.
// Every write keeps the payment history projection consistent in the same
// unit of work.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.TransactionRecord, error)
	UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, patch domain.TransactionPatch) (*domain.TransactionRecord, error)
	DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) (bool, error)
	RefundTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.RefundTransactionRequest) (*domain.TransactionRecord, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
