package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type paymentService struct {
	BaseService
	guard        accessGuard
	paymentRepo  portsrepo.PaymentRepositoryFacade
	contractRepo portsrepo.ContractReader
	reconciler   invoiceReconciler
	defaults     LedgerDefaults
}

// NewPaymentService creates the payment service. Every write reconciles the
// invoices it touches.
func NewPaymentService(base BaseService, scopes portssvc.ScopeSvc, paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade, contractRepo portsrepo.ContractReader, defaults LedgerDefaults) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:  base,
		guard:        accessGuard{scopes: scopes},
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		reconciler:   invoiceReconciler{invoiceRepo: invoiceRepo},
		defaults:     defaults,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// checkLink verifies that a payment may be linked to inv.
func checkLink(pay domain.Payment, inv *domain.Invoice) error {
	if inv.ContractID != pay.ContractID {
		return apperrors.NewValidationError("invoice " + inv.InvoiceID + " belongs to a different contract")
	}
	if inv.Status == domain.InvoiceCancelled {
		return apperrors.NewValidationError("invoice " + inv.InvoiceID + " is cancelled")
	}
	return nil
}

func invoiceIDOf(p *domain.Payment) string {
	if p.InvoiceID == nil {
		return ""
	}
	return *p.InvoiceID
}

// RecordPayment implements portssvc.PaymentWriterSvc
func (s *paymentService) RecordPayment(ctx context.Context, actor domain.Actor, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, req.ContractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("contract " + req.ContractID + " does not exist")
		}
		return nil, err
	}
	if err := s.guard.checkBuilding(ctx, actor, contract.BuildingID); err != nil {
		return nil, err
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		ContractID:       contract.ContractID,
		TenantID:         contract.TenantID,
		PaymentDate:      domain.DateOnly(now),
		Amount:           utils.RoundToCurrency(req.Amount, contract.Currency),
		PaymentMethod:    strings.TrimSpace(req.PaymentMethod),
		ReferenceNumber:  req.ReferenceNumber,
		IsAdvancePayment: req.IsAdvancePayment,
		Notes:            req.Notes,
		AuditFields:      domain.NewAuditFields(actor.UserID, now),
	}
	if req.InvoiceID != nil && *req.InvoiceID != "" {
		id := *req.InvoiceID
		payment.InvoiceID = &id
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = s.defaults.PaymentMethod
	}
	if err := payment.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = s.runInTx(ctx, "record payment", func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.reconciler.lock(ctx, tx, invoiceIDOf(&payment))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("invoice " + invoiceIDOf(&payment) + " does not exist")
			}
			return err
		}
		for _, inv := range locked {
			if err := checkLink(payment, inv); err != nil {
				return err
			}
		}
		if err := s.paymentRepo.SavePayment(ctx, tx, payment); err != nil {
			return err
		}
		return s.reconciler.settleAll(ctx, tx, locked, actor.UserID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("contract_id", contract.ContractID))
		return nil, err
	}

	s.GetLogger(ctx).Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID), slog.String("invoice_id", invoiceIDOf(&payment)))
	return s.paymentRepo.FindPaymentByID(ctx, payment.PaymentID)
}

// GetPayment implements portssvc.PaymentReaderSvc
func (s *paymentService) GetPayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, payment.ScopeFacts(), "payment"); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments implements portssvc.PaymentReaderSvc
func (s *paymentService) ListPayments(ctx context.Context, actor domain.Actor, filter portsrepo.PaymentFilter, page pagination.Page) ([]domain.Payment, error) {
	scope, err := s.guard.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPayments(ctx, scope, filter, page)
}

// UpdatePayment implements portssvc.PaymentWriterSvc
func (s *paymentService) UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, patch domain.PaymentPatch) (*domain.Payment, error) {
	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("no updatable fields supplied")
	}
	if _, err := s.GetPayment(ctx, actor, paymentID); err != nil {
		return nil, err
	}

	now := s.now()
	err := s.runInTx(ctx, "update payment", func(ctx context.Context, tx pgx.Tx) error {
		payment, err := s.paymentRepo.FindPaymentForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		before := invoiceIDOf(payment)
		patch.ApplyTo(payment)
		after := invoiceIDOf(payment)

		locked, err := s.reconciler.lock(ctx, tx, before, after)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("invoice " + after + " does not exist")
			}
			return err
		}
		if after != "" && after != before {
			if err := checkLink(*payment, locked[after]); err != nil {
				return err
			}
		}

		payment.LastUpdatedAt = now
		payment.LastUpdatedBy = actor.UserID
		if err := payment.Validate(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := s.paymentRepo.UpdatePayment(ctx, tx, *payment); err != nil {
			return err
		}
		return s.reconciler.settleAll(ctx, tx, locked, actor.UserID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// DeletePayment implements portssvc.PaymentWriterSvc
func (s *paymentService) DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) (bool, error) {
	if _, err := s.GetPayment(ctx, actor, paymentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	now := s.now()
	var deleted bool
	err := s.runInTx(ctx, "delete payment", func(ctx context.Context, tx pgx.Tx) error {
		payment, err := s.paymentRepo.FindPaymentForUpdate(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		locked, err := s.reconciler.lock(ctx, tx, invoiceIDOf(payment))
		if err != nil {
			return err
		}
		if deleted, err = s.paymentRepo.DeletePayment(ctx, tx, paymentID); err != nil {
			return err
		}
		return s.reconciler.settleAll(ctx, tx, locked, actor.UserID, now)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return false, err
	}
	return deleted, nil
}
