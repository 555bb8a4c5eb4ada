package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to financial transactions.
type transactionHandler struct {
	actors             portssvc.ActorResolverSvc
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(actors portssvc.ActorResolverSvc, ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{actors: actors, transactionService: ts}
}

// registerTransactionRoutes registers transaction and payment history routes.
func registerTransactionRoutes(rg *gin.RouterGroup, actors portssvc.ActorResolverSvc, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(actors, ts)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PATCH("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
		transactions.POST("/:transactionID/refunds", h.refundTransaction)
	}
	rg.GET("/tenants/:tenantID/payment-history", h.listPaymentHistory)
}

// createTransaction godoc
// @Summary Record a financial transaction
// @Description Records a transaction. Completed rent payments also update the tenant's payment history.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} domain.TransactionRecord
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Outside access scope"
// @Failure 409 {object} map[string]string "Reference number already used"
// @Failure 503 {object} map[string]string "Store busy"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rec, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, logger, err, "record transaction")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} domain.TransactionRecord
// @Failure 403 {object} map[string]string "Outside access scope"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	rec, err := h.transactionService.GetTransaction(c.Request.Context(), actor, c.Param("transactionID"))
	if err != nil {
		writeServiceError(c, logger, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the transactions visible to the caller, newest first.
// @Tags transactions
// @Produce  json
// @Param   tenantID query string false "Tenant filter"
// @Param   contractID query string false "Contract filter"
// @Param   type query string false "Transaction type"
// @Param   status query string false "Transaction status"
// @Param   limit query int false "Page size (max 200)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid paging"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}
	page, ok := queryPage(c)
	if !ok {
		return
	}

	filter := portsrepo.TransactionFilter{
		TenantID:   c.Query("tenantID"),
		ContractID: c.Query("contractID"),
		Type:       domain.TransactionType(c.Query("type")),
		Status:     domain.TransactionStatus(c.Query("status")),
	}
	rows, err := h.transactionService.ListTransactions(c.Request.Context(), actor, filter, page)
	if err != nil {
		writeServiceError(c, logger, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: rows, Limit: page.Limit, Offset: page.Offset})
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Patches the mutable fields of a transaction. Unknown fields are rejected.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   patch body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} domain.TransactionRecord
// @Failure 400 {object} map[string]string "Invalid or empty patch"
// @Failure 403 {object} map[string]string "Outside access scope"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := bindStrictJSON(c, &req); err != nil {
		logger.Warn("Rejected transaction patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, c.Param("transactionID"), req.ToPatch())
	if err != nil {
		writeServiceError(c, logger, err, "update transaction")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a transaction together with its payment history row.
// @Tags transactions
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Outside access scope"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	transactionID := c.Param("transactionID")
	deleted, err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, transactionID)
	if err != nil {
		writeServiceError(c, logger, err, "delete transaction")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// refundTransaction godoc
// @Summary Refund a transaction
// @Description Records a refund against a completed transaction, up to its remaining refundable balance.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Original transaction ID"
// @Param   refund body dto.RefundTransactionRequest true "Refund details"
// @Success 201 {object} domain.TransactionRecord
// @Failure 400 {object} map[string]string "Invalid refund"
// @Failure 403 {object} map[string]string "Outside access scope"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID}/refunds [post]
func (h *transactionHandler) refundTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.RefundTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rec, err := h.transactionService.RefundTransaction(c.Request.Context(), actor, c.Param("transactionID"), req)
	if err != nil {
		writeServiceError(c, logger, err, "refund transaction")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// listPaymentHistory godoc
// @Summary List a tenant's rent payment history
// @Tags transactions
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   limit query int false "Page size (max 200)"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListPaymentHistoryResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/payment-history [get]
func (h *transactionHandler) listPaymentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}
	page, ok := queryPage(c)
	if !ok {
		return
	}

	rows, err := h.transactionService.ListPaymentHistory(c.Request.Context(), actor, c.Param("tenantID"), page)
	if err != nil {
		writeServiceError(c, logger, err, "list payment history")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentHistoryResponse{History: rows, Limit: page.Limit, Offset: page.Offset})
}
