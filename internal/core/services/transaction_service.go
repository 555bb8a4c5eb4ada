package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/SscSPs/property_ledger/internal/utils/accounting"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	transactionReferencePrefix = "TXN"
	refundReferencePrefix      = "RFD"
)

type transactionService struct {
	BaseService
	guard           accessGuard
	transactionRepo portsrepo.TransactionRepositoryFacade
	historyRepo     portsrepo.HistoryRepository
	scheduleRepo    portsrepo.ScheduleRepositoryFacade
	contractRepo    portsrepo.ContractReader
	ownershipRepo   portsrepo.OwnershipReader
	defaults        LedgerDefaults
}

// NewTransactionService creates the transaction recorder.
func NewTransactionService(
	base BaseService,
	scopes portssvc.ScopeSvc,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	historyRepo portsrepo.HistoryRepository,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	contractRepo portsrepo.ContractReader,
	ownershipRepo portsrepo.OwnershipReader,
	defaults LedgerDefaults,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:     base,
		guard:           accessGuard{scopes: scopes},
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		scheduleRepo:    scheduleRepo,
		contractRepo:    contractRepo,
		ownershipRepo:   ownershipRepo,
		defaults:        defaults,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// normalize turns an intake request into a complete transaction with every
// optional field set to an explicit value.
func (s *transactionService) normalize(req dto.CreateTransactionRequest, userID string) (domain.FinancialTransaction, error) {
	now := s.now()
	txn := domain.FinancialTransaction{
		TransactionID:      uuid.NewString(),
		TenantID:           req.TenantID,
		ApartmentID:        req.ApartmentID,
		ContractID:         req.ContractID,
		ScheduleID:         req.ScheduleID,
		Type:               domain.TransactionType(req.Type),
		Currency:           strings.ToUpper(req.Currency),
		PaymentMethod:      req.PaymentMethod,
		DueDate:            req.DueDate,
		Status:             domain.TransactionStatus(req.Status),
		Description:        req.Description,
		ReceiptReference:   req.ReceiptReference,
		ProcessingFee:      decimal.Zero,
		LateFee:            decimal.Zero,
		BillingPeriodStart: req.BillingPeriodStart,
		BillingPeriodEnd:   req.BillingPeriodEnd,
		ReferenceNumber:    strings.TrimSpace(req.ReferenceNumber),
		AuditFields:        domain.NewAuditFields(userID, now),
	}
	if txn.Type == domain.Refund {
		return txn, apperrors.NewValidationError("refunds are recorded against their original transaction")
	}
	if txn.Currency == "" {
		txn.Currency = s.defaults.Currency
	}
	if txn.PaymentMethod == "" {
		txn.PaymentMethod = s.defaults.PaymentMethod
	}
	if txn.Status == "" {
		txn.Status = domain.TransactionCompleted
	}
	txn.TransactionDate = domain.DateOnly(now)
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	txn.Amount = utils.RoundToCurrency(req.Amount, txn.Currency)
	if req.ProcessingFee != nil {
		txn.ProcessingFee = utils.RoundToCurrency(*req.ProcessingFee, txn.Currency)
	}
	if req.LateFee != nil {
		txn.LateFee = utils.RoundToCurrency(*req.LateFee, txn.Currency)
	}
	if txn.ReferenceNumber == "" {
		ref, err := utils.GenerateReference(transactionReferencePrefix, now)
		if err != nil {
			return txn, fmt.Errorf("failed to generate reference number: %w", err)
		}
		txn.ReferenceNumber = ref
	}
	if err := txn.Validate(); err != nil {
		return txn, apperrors.NewValidationError(err.Error())
	}
	return txn, nil
}

// checkLinks verifies that the contract, apartment and schedule a new
// transaction points at all belong to its tenant. Without a contract the
// apartment must be the tenant's current one.
func (s *transactionService) checkLinks(ctx context.Context, txn domain.FinancialTransaction) error {
	if txn.ContractID != nil {
		contract, err := s.contractRepo.FindContractByID(ctx, *txn.ContractID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("contract " + *txn.ContractID + " does not exist")
			}
			return err
		}
		if contract.TenantID != txn.TenantID || contract.ApartmentID != txn.ApartmentID {
			return apperrors.NewValidationError("contract " + contract.ContractID + " does not cover this tenant and apartment")
		}
	} else {
		apartmentID, err := s.ownershipRepo.FindApartmentIDForTenant(ctx, txn.TenantID)
		if err != nil {
			return err
		}
		if apartmentID != txn.ApartmentID {
			return apperrors.NewValidationError("apartment " + txn.ApartmentID + " is not the tenant's apartment")
		}
	}

	if txn.ScheduleID == nil {
		return nil
	}
	schedule, err := s.scheduleRepo.FindScheduleByID(ctx, *txn.ScheduleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("schedule " + *txn.ScheduleID + " does not exist")
		}
		return err
	}
	if schedule.TenantID != txn.TenantID {
		return apperrors.NewValidationError("schedule belongs to a different tenant")
	}
	if txn.ContractID != nil && schedule.ContractID != *txn.ContractID {
		return apperrors.NewValidationError("schedule belongs to a different contract")
	}
	return nil
}

func (s *transactionService) historyFor(txn domain.FinancialTransaction, userID string) domain.TenantPaymentHistory {
	h := txn.DeriveHistory()
	h.HistoryID = uuid.NewString()
	h.AuditFields = domain.NewAuditFields(userID, s.now())
	return h
}

// CreateTransaction implements portssvc.TransactionWriterSvc
func (s *transactionService) CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.TransactionRecord, error) {
	logger := s.GetLogger(ctx)

	txn, err := s.normalize(req, actor.UserID)
	if err != nil {
		return nil, err
	}

	buildingID, err := s.ownershipRepo.FindBuildingIDForTenant(ctx, txn.TenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("tenant " + txn.TenantID + " does not exist")
		}
		return nil, err
	}
	if err := s.guard.checkBuilding(ctx, actor, buildingID); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, txn); err != nil {
		return nil, err
	}

	history := s.historyFor(txn, actor.UserID)
	err = s.runInTx(ctx, "create transaction", func(ctx context.Context, tx pgx.Tx) error {
		if err := s.transactionRepo.SaveTransaction(ctx, tx, txn); err != nil {
			return err
		}
		if txn.SettlesRent() {
			if err := s.historyRepo.UpsertHistory(ctx, tx, history); err != nil {
				return err
			}
		}
		if txn.ScheduleID != nil && txn.Status == domain.TransactionCompleted {
			return s.scheduleRepo.MarkSchedulePaid(ctx, tx, *txn.ScheduleID, txn.TransactionID, actor.UserID, txn.CreatedAt)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("tenant_id", txn.TenantID))
		return nil, err
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference_number", txn.ReferenceNumber),
		slog.String("type", string(txn.Type)))
	return s.transactionRepo.FindTransactionByID(ctx, txn.TransactionID)
}

// GetTransaction implements portssvc.TransactionReaderSvc
func (s *transactionService) GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.TransactionRecord, error) {
	record, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, record.ScopeFacts(), "transaction"); err != nil {
		return nil, err
	}
	return record, nil
}

// ListTransactions implements portssvc.TransactionReaderSvc
func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, filter portsrepo.TransactionFilter, page pagination.Page) ([]domain.TransactionRecord, error) {
	scope, err := s.guard.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.ListTransactions(ctx, scope, filter, page)
}

// ListPaymentHistory implements portssvc.TransactionReaderSvc
func (s *transactionService) ListPaymentHistory(ctx context.Context, actor domain.Actor, tenantID string, page pagination.Page) ([]domain.TenantPaymentHistory, error) {
	scope, err := s.guard.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.ListHistory(ctx, scope, tenantID, page)
}

// UpdateTransaction implements portssvc.TransactionWriterSvc
func (s *transactionService) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, patch domain.TransactionPatch) (*domain.TransactionRecord, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, existing.ScopeFacts(), "transaction"); err != nil {
		return nil, err
	}

	now := s.now()
	historyID := uuid.NewString()
	err = s.runInTx(ctx, "update transaction", func(ctx context.Context, tx pgx.Tx) error {
		txn, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		wasRent := txn.SettlesRent()
		wasCompleted := txn.Status == domain.TransactionCompleted

		patch.ApplyTo(txn)
		txn.ProcessingFee = utils.RoundToCurrency(txn.ProcessingFee, txn.Currency)
		txn.LateFee = utils.RoundToCurrency(txn.LateFee, txn.Currency)
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = actor.UserID
		if err := txn.Validate(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := s.transactionRepo.UpdateTransaction(ctx, tx, *txn); err != nil {
			return err
		}

		switch {
		case txn.SettlesRent():
			h := txn.DeriveHistory()
			h.HistoryID = historyID
			h.AuditFields = domain.NewAuditFields(actor.UserID, now)
			if err := s.historyRepo.UpsertHistory(ctx, tx, h); err != nil {
				return err
			}
		case wasRent:
			if _, err := s.historyRepo.DeleteHistoryByTransaction(ctx, tx, transactionID); err != nil {
				return err
			}
		}

		if txn.ScheduleID == nil {
			return nil
		}
		isCompleted := txn.Status == domain.TransactionCompleted
		switch {
		case isCompleted && !wasCompleted:
			return s.scheduleRepo.MarkSchedulePaid(ctx, tx, *txn.ScheduleID, transactionID, actor.UserID, now)
		case !isCompleted && wasCompleted:
			_, err := s.scheduleRepo.ReleaseSchedulesByTransaction(ctx, tx, transactionID, actor.UserID, now)
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.GetLogger(ctx).Info("Transaction updated", slog.String("transaction_id", transactionID))
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

// DeleteTransaction implements portssvc.TransactionWriterSvc
func (s *transactionService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) (bool, error) {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.guard.checkRow(ctx, actor, existing.ScopeFacts(), "transaction"); err != nil {
		return false, err
	}

	now := s.now()
	var deleted bool
	err = s.runInTx(ctx, "delete transaction", func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.historyRepo.DeleteHistoryByTransaction(ctx, tx, transactionID); err != nil {
			return err
		}
		if _, err := s.scheduleRepo.ReleaseSchedulesByTransaction(ctx, tx, transactionID, actor.UserID, now); err != nil {
			return err
		}
		var err error
		deleted, err = s.transactionRepo.DeleteTransaction(ctx, tx, transactionID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return false, err
	}
	if deleted {
		s.GetLogger(ctx).Info("Transaction deleted", slog.String("transaction_id", transactionID))
	}
	return deleted, nil
}

// RefundTransaction implements portssvc.TransactionWriterSvc
func (s *transactionService) RefundTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.RefundTransactionRequest) (*domain.TransactionRecord, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("refund amount must be positive")
	}

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, original.ScopeFacts(), "transaction"); err != nil {
		return nil, err
	}

	now := s.now()
	refundID := uuid.NewString()
	reference, err := utils.GenerateReference(refundReferencePrefix, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refund reference: %w", err)
	}

	err = s.runInTx(ctx, "refund transaction", func(ctx context.Context, tx pgx.Tx) error {
		orig, err := s.transactionRepo.FindTransactionForUpdate(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if orig.Type == domain.Refund {
			return apperrors.NewValidationError("a refund cannot itself be refunded")
		}
		if orig.Status != domain.TransactionCompleted {
			return apperrors.NewValidationError("only completed transactions can be refunded")
		}
		prior, err := s.transactionRepo.SumRefunds(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		amount := utils.RoundToCurrency(req.Amount, orig.Currency)
		balance := accounting.RefundableBalance(orig.Amount, prior)
		if amount.GreaterThan(balance) {
			return apperrors.NewValidationError(fmt.Sprintf("refund of %s exceeds refundable balance %s",
				utils.FormatWithCurrencyPrecision(amount, orig.Currency),
				utils.FormatWithCurrencyPrecision(balance, orig.Currency)))
		}

		related := orig.TransactionID
		refund := domain.FinancialTransaction{
			TransactionID:        refundID,
			TenantID:             orig.TenantID,
			ApartmentID:          orig.ApartmentID,
			ContractID:           orig.ContractID,
			RelatedTransactionID: &related,
			Type:                 domain.Refund,
			Amount:               amount,
			Currency:             orig.Currency,
			PaymentMethod:        orig.PaymentMethod,
			TransactionDate:      domain.DateOnly(now),
			Status:               domain.TransactionCompleted,
			Description:          req.Reason,
			ProcessingFee:        decimal.Zero,
			LateFee:              decimal.Zero,
			ReferenceNumber:      reference,
			AuditFields:          domain.NewAuditFields(actor.UserID, now),
		}
		return s.transactionRepo.SaveTransaction(ctx, tx, refund)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to refund transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.GetLogger(ctx).Info("Transaction refunded",
		slog.String("transaction_id", transactionID), slog.String("refund_id", refundID))
	return s.transactionRepo.FindTransactionByID(ctx, refundID)
}
