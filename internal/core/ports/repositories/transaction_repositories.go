package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction listings beyond the access scope.
type TransactionFilter struct {
	TenantID   string
	ContractID string
	Type       domain.TransactionType
	Status     domain.TransactionStatus
}

// TransactionReader defines read operations for financial transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction joined with tenant and unit display fields.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error)

	// ListTransactions retrieves the transactions visible under scope, newest first.
	ListTransactions(ctx context.Context, scope domain.AccessScope, filter TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error)
}

// TransactionWriter defines write operations for financial transactions
type TransactionWriter interface {
	// SaveTransaction inserts a transaction inside tx.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error

	// FindTransactionForUpdate locks the transaction row inside tx.
	FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.FinancialTransaction, error)

	// UpdateTransaction writes the mutable fields of txn.
	UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error

	// DeleteTransaction removes the transaction row and reports whether it existed.
	DeleteTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (bool, error)

	// SumRefunds totals the refunds already recorded against an original transaction.
	SumRefunds(ctx context.Context, tx pgx.Tx, originalTransactionID string) (decimal.Decimal, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// HistoryRepository defines access to the materialized payment history.
type HistoryRepository interface {
	// UpsertHistory inserts the history row of a transaction or refreshes the existing one.
	UpsertHistory(ctx context.Context, tx pgx.Tx, history domain.TenantPaymentHistory) error

	// DeleteHistoryByTransaction removes the history rows derived from a transaction.
	DeleteHistoryByTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (int64, error)

	// ListHistory retrieves history rows visible under scope, newest month first.
	ListHistory(ctx context.Context, scope domain.AccessScope, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error)
}
