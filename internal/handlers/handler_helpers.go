package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// requireActor resolves the authenticated user into an actor with a role.
// It writes the error response itself and reports false when it fails.
func requireActor(c *gin.Context, actors portssvc.ActorResolverSvc) (domain.Actor, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}

	actor, err := actors.ResolveActor(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, logger, err, "resolve user")
		return domain.Actor{}, false
	}
	return actor, true
}

// writeServiceError maps a service error onto a status code.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrTransient):
		logger.Warn("Store contention outlived retries", slog.String("action", action), slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The ledger is busy, please retry"})
		return
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": message})
}

// bindStrictJSON decodes the body rejecting unknown fields, then runs the
// binding validator. Patch bodies use it so a misspelled field is an error
// instead of a silent no-op.
func bindStrictJSON(c *gin.Context, obj any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return binding.Validator.ValidateStruct(obj)
}

func queryPage(c *gin.Context) (pagination.Page, bool) {
	page, err := pagination.ParsePage(c.Query("limit"), c.Query("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pagination.Page{}, false
	}
	return page, true
}
