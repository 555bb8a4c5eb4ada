package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	ContractRepo    ContractRepositoryFacade
	ScheduleRepo    ScheduleRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	HistoryRepo     HistoryRepository
	InvoiceRepo     InvoiceRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	UserRepo        UserReader
	OwnershipRepo   OwnershipReader
}
