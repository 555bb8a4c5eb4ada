package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
	"github.com/SscSPs/property_ledger/internal/middleware"
)

// accessGuard applies the actor's access scope to single rows.
type accessGuard struct {
	scopes portssvc.ScopeSvc
}

func (g accessGuard) scopeFor(ctx context.Context, actor domain.Actor) (domain.AccessScope, error) {
	return g.scopes.ComputeAccessScope(ctx, actor)
}

// checkRow returns ErrForbidden when facts fall outside the actor's scope.
func (g accessGuard) checkRow(ctx context.Context, actor domain.Actor, facts domain.ScopeFacts, what string) error {
	scope, err := g.scopeFor(ctx, actor)
	if err != nil {
		return err
	}
	if !scope.Permits(facts) {
		middleware.GetLoggerFromCtx(ctx).Warn("Access scope denied",
			slog.String("user_id", actor.UserID), slog.String("resource", what), slog.String("row_id", facts.RowID))
		return apperrors.NewForbiddenError(what + " is outside your access scope")
	}
	return nil
}

func (g accessGuard) checkBuilding(ctx context.Context, actor domain.Actor, buildingID string) error {
	return g.scopes.AuthorizeBuilding(ctx, actor, buildingID)
}
