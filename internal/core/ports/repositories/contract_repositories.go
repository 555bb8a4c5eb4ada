package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ContractReader defines read operations for contract data
type ContractReader interface {
	// FindContractByID retrieves a contract joined with its apartment's building.
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	// SaveContract inserts a new contract inside tx.
	SaveContract(ctx context.Context, tx pgx.Tx, contract domain.Contract) error

	// FindContractForUpdate locks the contract row inside tx.
	FindContractForUpdate(ctx context.Context, tx pgx.Tx, contractID string) (*domain.Contract, error)

	// UpdateContractTerms writes a renewal.
	UpdateContractTerms(ctx context.Context, tx pgx.Tx, contractID string, endDate time.Time, monthlyRent decimal.Decimal, status domain.ContractStatus, userID string, now time.Time) error

	// DeleteContract removes the contract row and reports whether it existed.
	DeleteContract(ctx context.Context, tx pgx.Tx, contractID string) (bool, error)
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
