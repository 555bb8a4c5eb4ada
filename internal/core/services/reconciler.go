package services

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// invoiceReconciler keeps invoice settlement in step with linked payments.
// Callers lock every invoice a write touches before changing payments and
// settle each of them afterwards within the same transaction.
type invoiceReconciler struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// lock takes row locks on the given invoices in ascending id order so two
// writers touching the same pair never wait on each other in a cycle.
func (r invoiceReconciler) lock(ctx context.Context, tx pgx.Tx, invoiceIDs ...string) (map[string]*domain.Invoice, error) {
	ids := make([]string, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	locked := make(map[string]*domain.Invoice, len(ids))
	for _, id := range ids {
		inv, err := r.invoiceRepo.FindInvoiceForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = inv
	}
	return locked, nil
}

// settle recomputes the invoice from the full sum of its linked payments.
// The result depends only on what is linked, so repeating it is harmless.
func (r invoiceReconciler) settle(ctx context.Context, tx pgx.Tx, inv *domain.Invoice, userID string, now time.Time) error {
	paid, err := r.invoiceRepo.SumPaymentsForInvoice(ctx, tx, inv.InvoiceID)
	if err != nil {
		return err
	}
	settlement := domain.Reconcile(inv.TotalAmount, paid)
	if inv.Status == domain.InvoiceCancelled {
		settlement.Status = domain.InvoiceCancelled
	}
	if err := r.invoiceRepo.UpdateInvoiceSettlement(ctx, tx, inv.InvoiceID, settlement, userID, now); err != nil {
		return err
	}

	if settlement.Status != inv.Status {
		middleware.GetLoggerFromCtx(ctx).Info("Invoice status changed",
			slog.String("invoice_id", inv.InvoiceID),
			slog.String("from", string(inv.Status)),
			slog.String("to", string(settlement.Status)))
	}
	inv.AmountPaid = settlement.TotalPaid
	inv.AmountDue = settlement.AmountDue
	inv.Status = settlement.Status
	return nil
}

func (r invoiceReconciler) settleAll(ctx context.Context, tx pgx.Tx, invoices map[string]*domain.Invoice, userID string, now time.Time) error {
	ids := make([]string, 0, len(invoices))
	for id := range invoices {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := r.settle(ctx, tx, invoices[id], userID, now); err != nil {
			return err
		}
	}
	return nil
}
