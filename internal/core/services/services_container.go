package services

import (
	"time"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/platform/retry"
)

// NewServiceContainer wires every service to the repositories it needs.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, policy retry.Policy) *portssvc.ServiceContainer {
	base := BaseService{TxManager: repos.TxManager, Retry: policy, Clock: time.Now}
	defaults := LedgerDefaults{
		RentDueDay:    cfg.RentDueDay,
		Currency:      cfg.DefaultCurrency,
		PaymentMethod: cfg.DefaultPaymentMethod,
	}

	scope := NewScopeService(repos.UserRepo, repos.OwnershipRepo)

	return &portssvc.ServiceContainer{
		Scope:       scope,
		Schedule:    NewScheduleService(base, scope, repos.ScheduleRepo, repos.ContractRepo, defaults.RentDueDay),
		Contract:    NewContractService(base, scope, repos.ContractRepo, repos.ScheduleRepo, repos.OwnershipRepo, defaults),
		Transaction: NewTransactionService(base, scope, repos.TransactionRepo, repos.HistoryRepo, repos.ScheduleRepo, repos.ContractRepo, repos.OwnershipRepo, defaults),
		Invoice:     NewInvoiceService(base, scope, repos.InvoiceRepo, repos.ContractRepo),
		Payment:     NewPaymentService(base, scope, repos.PaymentRepo, repos.InvoiceRepo, repos.ContractRepo, defaults),
	}
}
