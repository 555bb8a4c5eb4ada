package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/dto"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type contractHandler struct {
	actors          portssvc.ActorResolverSvc
	contractService portssvc.ContractSvcFacade
	scheduleService portssvc.ScheduleReaderSvc
}

// registerContractRoutes registers contract lifecycle and schedule routes.
func registerContractRoutes(rg *gin.RouterGroup, actors portssvc.ActorResolverSvc, cs portssvc.ContractSvcFacade, ss portssvc.ScheduleReaderSvc) {
	h := &contractHandler{actors: actors, contractService: cs, scheduleService: ss}

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("/:contractID", h.getContract)
		contracts.DELETE("/:contractID", h.deleteContract)
		contracts.POST("/:contractID/renewals", h.renewContract)
		contracts.GET("/:contractID/schedules", h.listSchedules)
	}
}

// createContract godoc
// @Summary Create a rental contract
// @Description Creates the contract and its rent and deposit schedule in one step.
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Building not assigned"
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.contractService.CreateContract(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, logger, err, "create contract")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getContract godoc
// @Summary Get a contract with its schedule
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Security BearerAuth
// @Router /contracts/{contractID} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	resp, err := h.contractService.GetContract(c.Request.Context(), actor, c.Param("contractID"))
	if err != nil {
		writeServiceError(c, logger, err, "retrieve contract")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// renewContract godoc
// @Summary Renew a contract
// @Description Moves the end date forward and schedules rent for the added months only.
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Param   renewal body dto.RenewContractRequest true "New end date and optional rent"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid renewal"
// @Security BearerAuth
// @Router /contracts/{contractID}/renewals [post]
func (h *contractHandler) renewContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	var req dto.RenewContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.contractService.RenewContract(c.Request.Context(), actor, c.Param("contractID"), req.ToRenewal())
	if err != nil {
		writeServiceError(c, logger, err, "renew contract")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteContract godoc
// @Summary Delete a contract
// @Tags contracts
// @Param   contractID path string true "Contract ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Contract not found"
// @Security BearerAuth
// @Router /contracts/{contractID} [delete]
func (h *contractHandler) deleteContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	deleted, err := h.contractService.DeleteContract(c.Request.Context(), actor, c.Param("contractID"))
	if err != nil {
		writeServiceError(c, logger, err, "delete contract")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listSchedules godoc
// @Summary List the payment schedule of a contract
// @Tags contracts
// @Produce  json
// @Param   contractID path string true "Contract ID"
// @Success 200 {object} dto.ListSchedulesResponse
// @Security BearerAuth
// @Router /contracts/{contractID}/schedules [get]
func (h *contractHandler) listSchedules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, h.actors)
	if !ok {
		return
	}

	rows, err := h.scheduleService.ListSchedules(c.Request.Context(), actor, c.Param("contractID"))
	if err != nil {
		writeServiceError(c, logger, err, "list schedules")
		return
	}
	c.JSON(http.StatusOK, dto.ListSchedulesResponse{Schedules: rows})
}
