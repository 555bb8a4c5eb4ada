package services_test

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeTx stands in for a pgx.Tx. The in-memory store never calls through it.
type fakeTx struct {
	pgx.Tx
	seq int
}

type memState struct {
	users             map[string]domain.User
	ownerBuildings    map[string][]string
	tenantBuilding    map[string]string
	tenantApartment   map[string]string
	apartmentBuilding map[string]string
	contracts         map[string]domain.Contract
	schedules         map[string]domain.PaymentSchedule
	txns              map[string]domain.FinancialTransaction
	history           map[string]domain.TenantPaymentHistory // keyed by transaction id
	invoices          map[string]domain.Invoice
	payments          map[string]domain.Payment
}

func (s memState) clone() memState {
	owners := make(map[string][]string, len(s.ownerBuildings))
	for k, v := range s.ownerBuildings {
		owners[k] = slices.Clone(v)
	}
	return memState{
		users:             maps.Clone(s.users),
		ownerBuildings:    owners,
		tenantBuilding:    maps.Clone(s.tenantBuilding),
		tenantApartment:   maps.Clone(s.tenantApartment),
		apartmentBuilding: maps.Clone(s.apartmentBuilding),
		contracts:         maps.Clone(s.contracts),
		schedules:         maps.Clone(s.schedules),
		txns:              maps.Clone(s.txns),
		history:           maps.Clone(s.history),
		invoices:          maps.Clone(s.invoices),
		payments:          maps.Clone(s.payments),
	}
}

// memStore implements every repository port plus the transaction manager.
// Begin snapshots the state and Rollback restores it, so a failed unit of
// work leaves no trace. Failures can be queued per method name.
type memStore struct {
	mu       sync.Mutex
	state    memState
	snapshot *memState
	txSeq    int
	failures map[string][]error
	calls    map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			users:             map[string]domain.User{},
			ownerBuildings:    map[string][]string{},
			tenantBuilding:    map[string]string{},
			tenantApartment:   map[string]string{},
			apartmentBuilding: map[string]string{},
			contracts:         map[string]domain.Contract{},
			schedules:         map[string]domain.PaymentSchedule{},
			txns:              map[string]domain.FinancialTransaction{},
			history:           map[string]domain.TenantPaymentHistory{},
			invoices:          map[string]domain.Invoice{},
			payments:          map[string]domain.Payment{},
		},
		failures: map[string][]error{},
		calls:    map[string]int{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       m,
		ContractRepo:    m,
		ScheduleRepo:    m,
		TransactionRepo: m,
		HistoryRepo:     m,
		InvoiceRepo:     m,
		PaymentRepo:     m,
		UserRepo:        m,
		OwnershipRepo:   m,
	}
}

// failNext queues err as the result of the next call to method.
func (m *memStore) failNext(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method] = append(m.failures[method], err)
}

func (m *memStore) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *memStore) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// enter records a call and pops a queued failure. Callers hold m.mu.
func (m *memStore) enter(method string) error {
	m.calls[method]++
	queue := m.failures[method]
	if len(queue) == 0 {
		return nil
	}
	m.failures[method] = queue[1:]
	return queue[0]
}

// --- seeding helpers ---

func (m *memStore) addUser(id string, role domain.Role) {
	m.state.users[id] = domain.User{UserID: id, Name: id, Role: role}
}

func (m *memStore) assignBuilding(ownerID, buildingID string) {
	m.state.ownerBuildings[ownerID] = append(m.state.ownerBuildings[ownerID], buildingID)
}

func (m *memStore) addTenant(tenantID, apartmentID, buildingID string) {
	m.state.tenantBuilding[tenantID] = buildingID
	m.state.tenantApartment[tenantID] = apartmentID
	m.state.apartmentBuilding[apartmentID] = buildingID
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Begin"); err != nil {
		return nil, err
	}
	snap := m.state.clone()
	m.snapshot = &snap
	m.txSeq++
	return &fakeTx{seq: m.txSeq}, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Commit"); err != nil {
		return err
	}
	m.snapshot = nil
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Rollback"]++
	if m.snapshot != nil {
		m.state = *m.snapshot
		m.snapshot = nil
	}
	return nil
}

// --- users and ownership ---

func (m *memStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := m.state.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + userID)
	}
	return &u, nil
}

func (m *memStore) FindAssignedBuildingIDs(ctx context.Context, ownerUserID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindAssignedBuildingIDs"); err != nil {
		return nil, err
	}
	return slices.Clone(m.state.ownerBuildings[ownerUserID]), nil
}

func (m *memStore) FindTransactionIDsByContractOwner(ctx context.Context, ownerUserID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindTransactionIDsByContractOwner"); err != nil {
		return nil, err
	}
	var ids []string
	for id, t := range m.state.txns {
		if t.ContractID == nil {
			continue
		}
		c, ok := m.state.contracts[*t.ContractID]
		if !ok || c.OwnerID == nil || *c.OwnerID != ownerUserID {
			continue
		}
		if slices.Contains(m.state.ownerBuildings[ownerUserID], m.state.tenantBuilding[t.TenantID]) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) FindBuildingIDForTenant(ctx context.Context, tenantID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindBuildingIDForTenant"); err != nil {
		return "", err
	}
	b, ok := m.state.tenantBuilding[tenantID]
	if !ok {
		return "", apperrors.NewNotFoundError("tenant " + tenantID)
	}
	return b, nil
}

func (m *memStore) FindApartmentIDForTenant(ctx context.Context, tenantID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindApartmentIDForTenant"); err != nil {
		return "", err
	}
	a, ok := m.state.tenantApartment[tenantID]
	if !ok {
		return "", apperrors.NewNotFoundError("tenant " + tenantID)
	}
	return a, nil
}

func (m *memStore) FindBuildingIDForApartment(ctx context.Context, apartmentID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindBuildingIDForApartment"); err != nil {
		return "", err
	}
	b, ok := m.state.apartmentBuilding[apartmentID]
	if !ok {
		return "", apperrors.NewNotFoundError("apartment " + apartmentID)
	}
	return b, nil
}

// --- contracts ---

func (m *memStore) contractLocked(contractID string) (*domain.Contract, error) {
	c, ok := m.state.contracts[contractID]
	if !ok {
		return nil, apperrors.NewNotFoundError("contract " + contractID)
	}
	c.BuildingID = m.state.apartmentBuilding[c.ApartmentID]
	return &c, nil
}

func (m *memStore) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindContractByID"); err != nil {
		return nil, err
	}
	return m.contractLocked(contractID)
}

func (m *memStore) SaveContract(ctx context.Context, tx pgx.Tx, contract domain.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SaveContract"); err != nil {
		return err
	}
	if _, ok := m.state.contracts[contract.ContractID]; ok {
		return apperrors.NewAppError(409, "contract exists", apperrors.ErrDuplicate)
	}
	m.state.contracts[contract.ContractID] = contract
	return nil
}

func (m *memStore) FindContractForUpdate(ctx context.Context, tx pgx.Tx, contractID string) (*domain.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindContractForUpdate"); err != nil {
		return nil, err
	}
	return m.contractLocked(contractID)
}

func (m *memStore) UpdateContractTerms(ctx context.Context, tx pgx.Tx, contractID string, endDate time.Time, monthlyRent decimal.Decimal, status domain.ContractStatus, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateContractTerms"); err != nil {
		return err
	}
	c, ok := m.state.contracts[contractID]
	if !ok {
		return apperrors.NewNotFoundError("contract " + contractID)
	}
	c.EndDate = &endDate
	c.MonthlyRent = monthlyRent
	c.Status = status
	c.LastUpdatedBy = userID
	c.LastUpdatedAt = now
	m.state.contracts[contractID] = c
	return nil
}

func (m *memStore) DeleteContract(ctx context.Context, tx pgx.Tx, contractID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteContract"); err != nil {
		return false, err
	}
	_, ok := m.state.contracts[contractID]
	delete(m.state.contracts, contractID)
	return ok, nil
}

// --- schedules ---

func (m *memStore) ListSchedulesByContract(ctx context.Context, contractID string) ([]domain.PaymentSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListSchedulesByContract"); err != nil {
		return nil, err
	}
	rows := []domain.PaymentSchedule{}
	for _, s := range m.state.schedules {
		if s.ContractID == contractID {
			rows = append(rows, s)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DueDate.Before(rows[j].DueDate) })
	return rows, nil
}

func (m *memStore) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindScheduleByID"); err != nil {
		return nil, err
	}
	s, ok := m.state.schedules[scheduleID]
	if !ok {
		return nil, apperrors.NewNotFoundError("schedule " + scheduleID)
	}
	return &s, nil
}

func (m *memStore) SaveSchedules(ctx context.Context, tx pgx.Tx, schedules []domain.PaymentSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SaveSchedules"); err != nil {
		return err
	}
	for _, s := range schedules {
		m.state.schedules[s.ScheduleID] = s
	}
	return nil
}

func (m *memStore) MarkSchedulePaid(ctx context.Context, tx pgx.Tx, scheduleID string, transactionID string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("MarkSchedulePaid"); err != nil {
		return err
	}
	s, ok := m.state.schedules[scheduleID]
	linked := s.TransactionID != nil && *s.TransactionID == transactionID
	if !ok || (s.Status != domain.SchedulePending && !linked) {
		return apperrors.NewValidationError("schedule " + scheduleID + " cannot be settled")
	}
	s.Status = domain.SchedulePaid
	s.TransactionID = &transactionID
	s.LastUpdatedBy = userID
	s.LastUpdatedAt = now
	m.state.schedules[scheduleID] = s
	return nil
}

func (m *memStore) ReleaseSchedulesByTransaction(ctx context.Context, tx pgx.Tx, transactionID string, userID string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ReleaseSchedulesByTransaction"); err != nil {
		return 0, err
	}
	var n int64
	for id, s := range m.state.schedules {
		if s.TransactionID != nil && *s.TransactionID == transactionID {
			s.Status = domain.SchedulePending
			s.TransactionID = nil
			s.LastUpdatedBy = userID
			s.LastUpdatedAt = now
			m.state.schedules[id] = s
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteSchedulesByContract(ctx context.Context, tx pgx.Tx, contractID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteSchedulesByContract"); err != nil {
		return 0, err
	}
	var n int64
	for id, s := range m.state.schedules {
		if s.ContractID == contractID {
			delete(m.state.schedules, id)
			n++
		}
	}
	return n, nil
}

// --- transactions ---

func (m *memStore) recordLocked(t domain.FinancialTransaction) domain.TransactionRecord {
	return domain.TransactionRecord{
		FinancialTransaction: t,
		TenantName:           t.TenantID,
		BuildingID:           m.state.tenantBuilding[t.TenantID],
	}
}

func (m *memStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindTransactionByID"); err != nil {
		return nil, err
	}
	t, ok := m.state.txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	rec := m.recordLocked(t)
	return &rec, nil
}

func (m *memStore) ListTransactions(ctx context.Context, scope domain.AccessScope, filter portsrepo.TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListTransactions"); err != nil {
		return nil, err
	}
	rows := []domain.TransactionRecord{}
	for _, t := range m.state.txns {
		rec := m.recordLocked(t)
		if !scope.Permits(rec.ScopeFacts()) {
			continue
		}
		if filter.TenantID != "" && t.TenantID != filter.TenantID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionID < rows[j].TransactionID })
	return pageOf(rows, page), nil
}

func pageOf[T any](rows []T, page pagination.Page) []T {
	if page.Offset >= len(rows) {
		return rows[:0]
	}
	rows = rows[page.Offset:]
	if page.Limit > 0 && page.Limit < len(rows) {
		rows = rows[:page.Limit]
	}
	return rows
}

func (m *memStore) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SaveTransaction"); err != nil {
		return err
	}
	for _, t := range m.state.txns {
		if t.ReferenceNumber == txn.ReferenceNumber {
			return apperrors.NewAppError(409, "reference number already used", apperrors.ErrDuplicate)
		}
	}
	m.state.txns[txn.TransactionID] = txn
	return nil
}

func (m *memStore) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.FinancialTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindTransactionForUpdate"); err != nil {
		return nil, err
	}
	t, ok := m.state.txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	return &t, nil
}

func (m *memStore) UpdateTransaction(ctx context.Context, tx pgx.Tx, txn domain.FinancialTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateTransaction"); err != nil {
		return err
	}
	if _, ok := m.state.txns[txn.TransactionID]; !ok {
		return apperrors.NewNotFoundError("transaction " + txn.TransactionID)
	}
	m.state.txns[txn.TransactionID] = txn
	return nil
}

func (m *memStore) DeleteTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteTransaction"); err != nil {
		return false, err
	}
	_, ok := m.state.txns[transactionID]
	delete(m.state.txns, transactionID)
	return ok, nil
}

func (m *memStore) SumRefunds(ctx context.Context, tx pgx.Tx, originalTransactionID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SumRefunds"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range m.state.txns {
		if t.Type == domain.Refund && t.Status != domain.TransactionFailed &&
			t.RelatedTransactionID != nil && *t.RelatedTransactionID == originalTransactionID {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// --- history ---

func (m *memStore) UpsertHistory(ctx context.Context, tx pgx.Tx, history domain.TenantPaymentHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpsertHistory"); err != nil {
		return err
	}
	if existing, ok := m.state.history[history.TransactionID]; ok {
		history.HistoryID = existing.HistoryID
		history.CreatedAt = existing.CreatedAt
		history.CreatedBy = existing.CreatedBy
	}
	m.state.history[history.TransactionID] = history
	return nil
}

func (m *memStore) DeleteHistoryByTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeleteHistoryByTransaction"); err != nil {
		return 0, err
	}
	if _, ok := m.state.history[transactionID]; !ok {
		return 0, nil
	}
	delete(m.state.history, transactionID)
	return 1, nil
}

func (m *memStore) ListHistory(ctx context.Context, scope domain.AccessScope, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListHistory"); err != nil {
		return nil, err
	}
	rows := []domain.TenantPaymentHistory{}
	for _, h := range m.state.history {
		facts := domain.ScopeFacts{BuildingID: m.state.tenantBuilding[h.TenantID], CreatedBy: h.CreatedBy, RowID: h.TransactionID}
		if !scope.Permits(facts) || (tenantID != "" && h.TenantID != tenantID) {
			continue
		}
		rows = append(rows, h)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PaymentMonth.After(rows[j].PaymentMonth) })
	return pageOf(rows, page), nil
}

// --- invoices ---

func (m *memStore) invoiceLocked(invoiceID string) (*domain.Invoice, error) {
	inv, ok := m.state.invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	inv.BuildingID = m.state.tenantBuilding[inv.TenantID]
	return &inv, nil
}

func (m *memStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindInvoiceByID"); err != nil {
		return nil, err
	}
	return m.invoiceLocked(invoiceID)
}

func (m *memStore) ListInvoices(ctx context.Context, scope domain.AccessScope, filter portsrepo.InvoiceFilter, page pagination.Page) ([]domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListInvoices"); err != nil {
		return nil, err
	}
	rows := []domain.Invoice{}
	for id := range m.state.invoices {
		inv, _ := m.invoiceLocked(id)
		facts := inv.ScopeFacts()
		facts.RowID = ""
		if !scope.Permits(facts) {
			continue
		}
		if filter.ContractID != "" && inv.ContractID != filter.ContractID {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		rows = append(rows, *inv)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].InvoiceID < rows[j].InvoiceID })
	return pageOf(rows, page), nil
}

func (m *memStore) SaveInvoice(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SaveInvoice"); err != nil {
		return err
	}
	m.state.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (m *memStore) FindInvoiceForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindInvoiceForUpdate"); err != nil {
		return nil, err
	}
	return m.invoiceLocked(invoiceID)
}

func (m *memStore) SumPaymentsForInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SumPaymentsForInvoice"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range m.state.payments {
		if p.InvoiceID != nil && *p.InvoiceID == invoiceID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (m *memStore) UpdateInvoiceSettlement(ctx context.Context, tx pgx.Tx, invoiceID string, settlement domain.Settlement, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdateInvoiceSettlement"); err != nil {
		return err
	}
	inv, ok := m.state.invoices[invoiceID]
	if !ok {
		return apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	inv.AmountPaid = settlement.TotalPaid
	inv.AmountDue = settlement.AmountDue
	inv.Status = settlement.Status
	inv.LastUpdatedBy = userID
	inv.LastUpdatedAt = now
	m.state.invoices[invoiceID] = inv
	return nil
}

// --- payments ---

func (m *memStore) paymentLocked(paymentID string) (*domain.Payment, error) {
	p, ok := m.state.payments[paymentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment " + paymentID)
	}
	p.BuildingID = m.state.tenantBuilding[p.TenantID]
	return &p, nil
}

func (m *memStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindPaymentByID"); err != nil {
		return nil, err
	}
	return m.paymentLocked(paymentID)
}

func (m *memStore) ListPayments(ctx context.Context, scope domain.AccessScope, filter portsrepo.PaymentFilter, page pagination.Page) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListPayments"); err != nil {
		return nil, err
	}
	rows := []domain.Payment{}
	for id := range m.state.payments {
		p, _ := m.paymentLocked(id)
		facts := p.ScopeFacts()
		facts.RowID = ""
		if !scope.Permits(facts) {
			continue
		}
		if filter.InvoiceID != "" && (p.InvoiceID == nil || *p.InvoiceID != filter.InvoiceID) {
			continue
		}
		rows = append(rows, *p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PaymentID < rows[j].PaymentID })
	return pageOf(rows, page), nil
}

func (m *memStore) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("SavePayment"); err != nil {
		return err
	}
	m.state.payments[payment.PaymentID] = payment
	return nil
}

func (m *memStore) FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("FindPaymentForUpdate"); err != nil {
		return nil, err
	}
	return m.paymentLocked(paymentID)
}

func (m *memStore) UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdatePayment"); err != nil {
		return err
	}
	m.state.payments[payment.PaymentID] = payment
	return nil
}

func (m *memStore) DeletePayment(ctx context.Context, tx pgx.Tx, paymentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeletePayment"); err != nil {
		return false, err
	}
	_, ok := m.state.payments[paymentID]
	delete(m.state.payments, paymentID)
	return ok, nil
}

var (
	_ portsrepo.TransactionManager          = (*memStore)(nil)
	_ portsrepo.ContractRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.ScheduleRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.HistoryRepository           = (*memStore)(nil)
	_ portsrepo.InvoiceRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.PaymentRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.UserReader                  = (*memStore)(nil)
	_ portsrepo.OwnershipReader             = (*memStore)(nil)
)
