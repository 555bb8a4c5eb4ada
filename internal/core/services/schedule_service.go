package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleService struct {
	BaseService
	guard        accessGuard
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	contractRepo portsrepo.ContractReader
	dueDay       int
}

// NewScheduleService creates the payment schedule generator.
func NewScheduleService(base BaseService, scopes portssvc.ScopeSvc, scheduleRepo portsrepo.ScheduleRepositoryFacade, contractRepo portsrepo.ContractReader, dueDay int) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		BaseService:  base,
		guard:        accessGuard{scopes: scopes},
		scheduleRepo: scheduleRepo,
		contractRepo: contractRepo,
		dueDay:       dueDay,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// stampSchedules assigns ids and audit fields to freshly built rows. It runs
// once per operation so a retried unit of work re-inserts identical rows.
func stampSchedules(rows []domain.PaymentSchedule, userID string, now time.Time) {
	for i := range rows {
		rows[i].ScheduleID = uuid.NewString()
		rows[i].AuditFields = domain.NewAuditFields(userID, now)
	}
}

// buildContractSchedules lays out every schedule row a contract implies:
// the monthly rent rows when the contract has an end date and the deposit
// row when it carries a security fee.
func buildContractSchedules(terms domain.ContractTerms, dueDay int) ([]domain.PaymentSchedule, error) {
	var rows []domain.PaymentSchedule
	if !terms.EndDate.IsZero() {
		rent, err := domain.BuildMonthlyRentSchedule(terms, dueDay)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		rows = append(rows, rent...)
	}
	if deposit := domain.BuildSecurityDepositSchedule(terms); deposit != nil {
		rows = append(rows, *deposit)
	}
	return rows, nil
}

// GenerateMonthlyRentSchedule implements portssvc.ScheduleGeneratorSvc
func (s *scheduleService) GenerateMonthlyRentSchedule(ctx context.Context, terms domain.ContractTerms, creatorUserID string) ([]domain.PaymentSchedule, error) {
	logger := s.GetLogger(ctx)

	rows, err := domain.BuildMonthlyRentSchedule(terms, s.dueDay)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if len(rows) == 0 {
		return []domain.PaymentSchedule{}, nil
	}
	stampSchedules(rows, creatorUserID, s.now())

	err = s.runInTx(ctx, "generate monthly rent schedule", func(ctx context.Context, tx pgx.Tx) error {
		return s.scheduleRepo.SaveSchedules(ctx, tx, rows)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist monthly rent schedule", slog.String("contract_id", terms.ContractID))
		return nil, err
	}
	logger.Info("Monthly rent schedule generated",
		slog.String("contract_id", terms.ContractID), slog.Int("rows", len(rows)))

	stored, err := s.scheduleRepo.ListSchedulesByContract(ctx, terms.ContractID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read schedules of contract %s: %w", terms.ContractID, err)
	}
	monthly := make([]domain.PaymentSchedule, 0, len(rows))
	for _, row := range stored {
		if row.PaymentType == domain.ScheduleMonthlyRent {
			monthly = append(monthly, row)
		}
	}
	return monthly, nil
}

// GenerateSecurityDepositSchedule implements portssvc.ScheduleGeneratorSvc
func (s *scheduleService) GenerateSecurityDepositSchedule(ctx context.Context, terms domain.ContractTerms, creatorUserID string) (*domain.PaymentSchedule, error) {
	row := domain.BuildSecurityDepositSchedule(terms)
	if row == nil {
		return nil, nil
	}
	rows := []domain.PaymentSchedule{*row}
	stampSchedules(rows, creatorUserID, s.now())

	err := s.runInTx(ctx, "generate security deposit schedule", func(ctx context.Context, tx pgx.Tx) error {
		return s.scheduleRepo.SaveSchedules(ctx, tx, rows)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist security deposit schedule", slog.String("contract_id", terms.ContractID))
		return nil, err
	}
	return &rows[0], nil
}

// ListSchedules implements portssvc.ScheduleReaderSvc
func (s *scheduleService) ListSchedules(ctx context.Context, actor domain.Actor, contractID string) ([]domain.PaymentSchedule, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, contract.ScopeFacts(), "contract"); err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListSchedulesByContract(ctx, contractID)
}
