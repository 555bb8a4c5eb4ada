package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type contractService struct {
	BaseService
	guard         accessGuard
	contractRepo  portsrepo.ContractRepositoryFacade
	scheduleRepo  portsrepo.ScheduleRepositoryFacade
	ownershipRepo portsrepo.OwnershipReader
	defaults      LedgerDefaults
}

// NewContractService creates the contract lifecycle service.
func NewContractService(base BaseService, scopes portssvc.ScopeSvc, contractRepo portsrepo.ContractRepositoryFacade, scheduleRepo portsrepo.ScheduleRepositoryFacade, ownershipRepo portsrepo.OwnershipReader, defaults LedgerDefaults) portssvc.ContractSvcFacade {
	return &contractService{
		BaseService:   base,
		guard:         accessGuard{scopes: scopes},
		contractRepo:  contractRepo,
		scheduleRepo:  scheduleRepo,
		ownershipRepo: ownershipRepo,
		defaults:      defaults,
	}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

// CreateContract implements portssvc.ContractWriterSvc
func (s *contractService) CreateContract(ctx context.Context, actor domain.Actor, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	logger := s.GetLogger(ctx)
	now := s.now()

	contract := domain.Contract{
		ContractID:  uuid.NewString(),
		TenantID:    req.TenantID,
		ApartmentID: req.ApartmentID,
		OwnerID:     req.OwnerID,
		StartDate:   domain.DateOnly(req.StartDate),
		MonthlyRent: req.MonthlyRent,
		Currency:    strings.ToUpper(req.Currency),
		SecurityFee: req.SecurityFee,
		Status:      domain.ContractStatus(req.Status),
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	if req.EndDate != nil {
		end := domain.DateOnly(*req.EndDate)
		contract.EndDate = &end
	}
	if contract.Currency == "" {
		contract.Currency = s.defaults.Currency
	}
	if contract.Status == "" {
		contract.Status = domain.ContractActive
	}
	contract.MonthlyRent = utils.RoundToCurrency(contract.MonthlyRent, contract.Currency)
	if err := contract.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	buildingID, err := s.ownershipRepo.FindBuildingIDForApartment(ctx, contract.ApartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("apartment " + contract.ApartmentID + " does not exist")
		}
		return nil, err
	}
	if err := s.guard.checkBuilding(ctx, actor, buildingID); err != nil {
		return nil, err
	}
	if contract.OwnerID != nil {
		if err := s.checkOwnerAssigned(ctx, *contract.OwnerID, buildingID); err != nil {
			return nil, err
		}
	}

	rows, err := buildContractSchedules(contract.Terms(), s.defaults.RentDueDay)
	if err != nil {
		return nil, err
	}
	stampSchedules(rows, actor.UserID, now)

	err = s.runInTx(ctx, "create contract", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.contractRepo.SaveContract(ctx, tx, contract); err != nil {
			return err
		}
		return s.scheduleRepo.SaveSchedules(ctx, tx, rows)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create contract", slog.String("tenant_id", contract.TenantID))
		return nil, err
	}

	logger.Info("Contract created",
		slog.String("contract_id", contract.ContractID), slog.Int("schedule_rows", len(rows)))
	return s.load(ctx, contract.ContractID)
}

// checkOwnerAssigned rejects a contract owner who is not assigned the
// building of the contracted apartment.
func (s *contractService) checkOwnerAssigned(ctx context.Context, ownerID, buildingID string) error {
	buildings, err := s.ownershipRepo.FindAssignedBuildingIDs(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load buildings of owner %s: %w", ownerID, err)
	}
	if !slices.Contains(buildings, buildingID) {
		return apperrors.NewValidationError(fmt.Sprintf("owner %s is not assigned building %s", ownerID, buildingID))
	}
	return nil
}

// GetContract implements portssvc.ContractReaderSvc
func (s *contractService) GetContract(ctx context.Context, actor domain.Actor, contractID string) (*dto.ContractResponse, error) {
	resp, err := s.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, resp.Contract.ScopeFacts(), "contract"); err != nil {
		return nil, err
	}
	return resp, nil
}

// RenewContract implements portssvc.ContractWriterSvc
func (s *contractService) RenewContract(ctx context.Context, actor domain.Actor, contractID string, renewal domain.ContractRenewal) (*dto.ContractResponse, error) {
	existing, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, existing.ScopeFacts(), "contract"); err != nil {
		return nil, err
	}

	now := s.now()
	newEnd := domain.DateOnly(renewal.NewEndDate)
	var added int

	err = s.runInTx(ctx, "renew contract", func(ctx context.Context, tx pgx.Tx) error {
		c, err := s.contractRepo.FindContractForUpdate(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if c.Status == domain.ContractTerminated {
			return apperrors.NewValidationError("terminated contracts cannot be renewed")
		}
		if c.EndDate == nil {
			return apperrors.NewValidationError("open-ended contracts have nothing to renew")
		}
		if !newEnd.After(domain.DateOnly(*c.EndDate)) {
			return apperrors.NewValidationError(fmt.Sprintf("new end date %s must be after current end date %s",
				newEnd.Format(time.DateOnly), c.EndDate.Format(time.DateOnly)))
		}
		rent := c.MonthlyRent
		if renewal.NewMonthlyRent != nil {
			rent = utils.RoundToCurrency(*renewal.NewMonthlyRent, c.Currency)
		}
		if !rent.IsPositive() {
			return apperrors.NewValidationError("monthly rent must be positive")
		}

		// Only the months after the current end date are scheduled; the
		// existing rows already cover every due date up to it.
		extension := c.Terms()
		extension.StartDate = c.EndDate.AddDate(0, 0, 1)
		extension.EndDate = newEnd
		extension.RentAmount = rent
		rows, err := domain.BuildMonthlyRentSchedule(extension, s.defaults.RentDueDay)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		stampSchedules(rows, actor.UserID, now)
		added = len(rows)

		if err := s.contractRepo.UpdateContractTerms(ctx, tx, contractID, newEnd, rent, domain.ContractActive, actor.UserID, now); err != nil {
			return err
		}
		return s.scheduleRepo.SaveSchedules(ctx, tx, rows)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to renew contract", slog.String("contract_id", contractID))
		return nil, err
	}

	s.GetLogger(ctx).Info("Contract renewed",
		slog.String("contract_id", contractID), slog.Int("schedule_rows_added", added))
	return s.load(ctx, contractID)
}

// DeleteContract implements portssvc.ContractWriterSvc
func (s *contractService) DeleteContract(ctx context.Context, actor domain.Actor, contractID string) (bool, error) {
	existing, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.guard.checkRow(ctx, actor, existing.ScopeFacts(), "contract"); err != nil {
		return false, err
	}

	var deleted bool
	err = s.runInTx(ctx, "delete contract", func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.scheduleRepo.DeleteSchedulesByContract(ctx, tx, contractID); err != nil {
			return err
		}
		var err error
		deleted, err = s.contractRepo.DeleteContract(ctx, tx, contractID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete contract", slog.String("contract_id", contractID))
		return false, err
	}
	return deleted, nil
}

func (s *contractService) load(ctx context.Context, contractID string) (*dto.ContractResponse, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.scheduleRepo.ListSchedulesByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules of contract %s: %w", contractID, err)
	}
	return &dto.ContractResponse{Contract: *contract, Schedules: schedules}, nil
}
