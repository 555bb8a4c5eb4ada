package handlers

import (
	"net/http"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type invoiceHandler struct {
	actors         portssvc.ActorResolverSvc
	invoiceService portssvc.InvoiceSvcFacade
}

func registerInvoiceRoutes(rg *gin.RouterGroup, actors portssvc.ActorResolverSvc, is portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{actors: actors, invoiceService: is}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/recalculate", h.recalculateInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Invoice number already used"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, logger, err, "create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), actor, c.Param("invoiceID"))
	if err != nil {
		writeServiceError(c, logger, err, "retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   tenantID query string false "Tenant filter"
// @Param   contractID query string false "Contract filter"
// @Param   status query string false "Invoice status"
// @Param   limit query int false "Page size (max 200)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}
	page, ok := queryPage(c)
	if !ok {
		return
	}

	filter := portsrepo.InvoiceFilter{
		TenantID:   c.Query("tenantID"),
		ContractID: c.Query("contractID"),
		Status:     domain.InvoiceStatus(c.Query("status")),
	}
	rows, err := h.invoiceService.ListInvoices(c.Request.Context(), actor, filter, page)
	if err != nil {
		writeServiceError(c, logger, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ListInvoicesResponse{Invoices: rows, Limit: page.Limit, Offset: page.Offset})
}

// recalculateInvoice godoc
// @Summary Recompute an invoice from its payments
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/recalculate [post]
func (h *invoiceHandler) recalculateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RecalculateInvoice(c.Request.Context(), actor, c.Param("invoiceID"))
	if err != nil {
		writeServiceError(c, logger, err, "recalculate invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}
