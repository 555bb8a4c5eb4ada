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
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const invoiceNumberPrefix = "INV"

type invoiceService struct {
	BaseService
	guard        accessGuard
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	contractRepo portsrepo.ContractReader
	reconciler   invoiceReconciler
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(base BaseService, scopes portssvc.ScopeSvc, invoiceRepo portsrepo.InvoiceRepositoryFacade, contractRepo portsrepo.ContractReader) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:  base,
		guard:        accessGuard{scopes: scopes},
		invoiceRepo:  invoiceRepo,
		contractRepo: contractRepo,
		reconciler:   invoiceReconciler{invoiceRepo: invoiceRepo},
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice implements portssvc.InvoiceWriterSvc
func (s *invoiceService) CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
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
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = contract.Currency
	}
	total := utils.RoundToCurrency(req.TotalAmount, currency)
	if !total.IsPositive() {
		return nil, apperrors.NewValidationError("invoice total must be positive")
	}
	start := domain.DateOnly(req.BillingPeriodStart)
	end := domain.DateOnly(req.BillingPeriodEnd)
	if end.Before(start) {
		return nil, apperrors.NewValidationError("billing period end precedes its start")
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		number, err = utils.GenerateReference(invoiceNumberPrefix, now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invoice number: %w", err)
		}
	}

	invoice := domain.Invoice{
		InvoiceID:          uuid.NewString(),
		ContractID:         contract.ContractID,
		TenantID:           contract.TenantID,
		ApartmentID:        contract.ApartmentID,
		InvoiceNumber:      number,
		BillingPeriodStart: start,
		BillingPeriodEnd:   end,
		DueDate:            domain.DateOnly(req.DueDate),
		TotalAmount:        total,
		AmountPaid:         decimal.Zero,
		AmountDue:          total,
		Currency:           currency,
		Status:             domain.InvoiceGenerated,
		AuditFields:        domain.NewAuditFields(actor.UserID, now),
	}

	err = s.runInTx(ctx, "create invoice", func(ctx context.Context, tx pgx.Tx) error {
		return s.invoiceRepo.SaveInvoice(ctx, tx, invoice)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("contract_id", contract.ContractID))
		return nil, err
	}

	s.GetLogger(ctx).Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	return s.invoiceRepo.FindInvoiceByID(ctx, invoice.InvoiceID)
}

// GetInvoice implements portssvc.InvoiceReaderSvc
func (s *invoiceService) GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.checkRow(ctx, actor, invoice.ScopeFacts(), "invoice"); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices implements portssvc.InvoiceReaderSvc
func (s *invoiceService) ListInvoices(ctx context.Context, actor domain.Actor, filter portsrepo.InvoiceFilter, page pagination.Page) ([]domain.Invoice, error) {
	scope, err := s.guard.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListInvoices(ctx, scope, filter, page)
}

// RecalculateInvoice implements portssvc.InvoiceWriterSvc
func (s *invoiceService) RecalculateInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	if _, err := s.GetInvoice(ctx, actor, invoiceID); err != nil {
		return nil, err
	}

	now := s.now()
	err := s.runInTx(ctx, "recalculate invoice", func(ctx context.Context, tx pgx.Tx) error {
		locked, err := s.reconciler.lock(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		return s.reconciler.settleAll(ctx, tx, locked, actor.UserID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to recalculate invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}
