package handlers

import (
	"log/slog"
	"net/http"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	actors         portssvc.ActorResolverSvc
	paymentService portssvc.PaymentSvcFacade
}

func registerPaymentRoutes(rg *gin.RouterGroup, actors portssvc.ActorResolverSvc, ps portssvc.PaymentSvcFacade) {
	h := &paymentHandler{actors: actors, paymentService: ps}

	payments := rg.Group("/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("", h.recordPayment)
		payments.GET("/:paymentID", h.getPayment)
		payments.PATCH("/:paymentID", h.updatePayment)
		payments.DELETE("/:paymentID", h.deletePayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment and reconciles the linked invoice in the same step.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, logger, err, "record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), actor, c.Param("paymentID"))
	if err != nil {
		writeServiceError(c, logger, err, "retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Param   tenantID query string false "Tenant filter"
// @Param   contractID query string false "Contract filter"
// @Param   invoiceID query string false "Invoice filter"
// @Param   limit query int false "Page size (max 200)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListPaymentsResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}
	page, ok := queryPage(c)
	if !ok {
		return
	}

	filter := portsrepo.PaymentFilter{
		TenantID:   c.Query("tenantID"),
		ContractID: c.Query("contractID"),
		InvoiceID:  c.Query("invoiceID"),
	}
	rows, err := h.paymentService.ListPayments(c.Request.Context(), actor, filter, page)
	if err != nil {
		writeServiceError(c, logger, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: rows, Limit: page.Limit, Offset: page.Offset})
}

// updatePayment godoc
// @Summary Update a payment
// @Description Patches a payment and reconciles every invoice it was or is now linked to. An empty invoiceID unlinks it.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   patch body dto.UpdatePaymentRequest true "Fields to change"
// @Success 200 {object} domain.Payment
// @Failure 400 {object} map[string]string "Invalid or empty patch"
// @Security BearerAuth
// @Router /payments/{paymentID} [patch]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		logger.Warn("Rejected payment patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), actor, c.Param("paymentID"), req.ToPatch())
	if err != nil {
		writeServiceError(c, logger, err, "update payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// deletePayment godoc
// @Summary Delete a payment
// @Tags payments
// @Param   paymentID path string true "Payment ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	deleted, err := h.paymentService.DeletePayment(c.Request.Context(), actor, c.Param("paymentID"))
	if err != nil {
		writeServiceError(c, logger, err, "delete payment")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
