package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/platform/retry"
	"github.com/SscSPs/property_ledger/internal/repositories/database/pgsql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// ledgerSuite wires every service to one in-memory store. Two buildings
// (b-1, b-2) are assigned to the owner; b-3 belongs to nobody.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
	svc   *portssvc.ServiceContainer

	admin    domain.Actor
	owner    domain.Actor
	outsider domain.Actor
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()

	s.store.addUser("admin", domain.RoleAdmin)
	s.store.addUser("owner-1", domain.RoleOwner)
	s.store.addUser("tenant-user", domain.RoleTenant)
	s.store.assignBuilding("owner-1", "b-1")
	s.store.assignBuilding("owner-1", "b-2")
	s.store.addTenant("t-1", "a-1", "b-1")
	s.store.addTenant("t-2", "a-2", "b-2")
	s.store.addTenant("t-3", "a-3", "b-3")

	s.admin = domain.Actor{UserID: "admin", Role: domain.RoleAdmin}
	s.owner = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner}
	s.outsider = domain.Actor{UserID: "tenant-user", Role: domain.RoleTenant}

	repos := s.store.provider()
	base := services.BaseService{
		TxManager: repos.TxManager,
		Retry:     retry.Once(0, pgsql.IsTransient),
		Clock:     func() time.Time { return fixedNow },
	}
	defaults := services.LedgerDefaults{RentDueDay: 5, Currency: "USD", PaymentMethod: "Cash"}
	scope := services.NewScopeService(repos.UserRepo, repos.OwnershipRepo)
	s.svc = &portssvc.ServiceContainer{
		Scope:       scope,
		Schedule:    services.NewScheduleService(base, scope, repos.ScheduleRepo, repos.ContractRepo, defaults.RentDueDay),
		Contract:    services.NewContractService(base, scope, repos.ContractRepo, repos.ScheduleRepo, repos.OwnershipRepo, defaults),
		Transaction: services.NewTransactionService(base, scope, repos.TransactionRepo, repos.HistoryRepo, repos.ScheduleRepo, repos.ContractRepo, repos.OwnershipRepo, defaults),
		Invoice:     services.NewInvoiceService(base, scope, repos.InvoiceRepo, repos.ContractRepo),
		Payment:     services.NewPaymentService(base, scope, repos.PaymentRepo, repos.InvoiceRepo, repos.ContractRepo, defaults),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func ptr[T any](v T) *T {
	return &v
}

// createContract stores a contract for tenant t-N in apartment a-N through the service.
func (s *ledgerSuite) createContract(actor domain.Actor, tenantID, apartmentID string, start, end time.Time, rent int64) *dto.ContractResponse {
	resp, err := s.svc.Contract.CreateContract(s.ctx, actor, dto.CreateContractRequest{
		TenantID:    tenantID,
		ApartmentID: apartmentID,
		StartDate:   start,
		EndDate:     &end,
		MonthlyRent: dec(rent),
	})
	s.Require().NoError(err)
	return resp
}

func (s *ledgerSuite) rentPayment(actor domain.Actor, tenantID, apartmentID string, amount int64) *domain.TransactionRecord {
	rec, err := s.svc.Transaction.CreateTransaction(s.ctx, actor, dto.CreateTransactionRequest{
		TenantID:    tenantID,
		ApartmentID: apartmentID,
		Type:        string(domain.RentPayment),
		Amount:      dec(amount),
	})
	s.Require().NoError(err)
	return rec
}
