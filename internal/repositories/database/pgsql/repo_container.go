package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool. lockTimeout is
// applied to each unit of work begun through the returned TxManager.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, LockTimeout: lockTimeout}
	userRepo := newPgxUserRepository(base)

	return portsrepo.RepositoryProvider{
		TxManager:       &base,
		ContractRepo:    newPgxContractRepository(base),
		ScheduleRepo:    newPgxScheduleRepository(base),
		TransactionRepo: newPgxTransactionRepository(base),
		HistoryRepo:     newPgxHistoryRepository(base),
		InvoiceRepo:     newPgxInvoiceRepository(base),
		PaymentRepo:     newPgxPaymentRepository(base),
		UserRepo:        userRepo,
		OwnershipRepo:   userRepo,
	}
}
