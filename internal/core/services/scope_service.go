package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/property_ledger/internal/core/ports/services"
)

type scopeService struct {
	BaseService
	userRepo      portsrepo.UserReader
	ownershipRepo portsrepo.OwnershipReader
}

// NewScopeService creates the service that resolves actors and their access scope.
func NewScopeService(userRepo portsrepo.UserReader, ownershipRepo portsrepo.OwnershipReader) portssvc.ScopeSvcFacade {
	return &scopeService{userRepo: userRepo, ownershipRepo: ownershipRepo}
}

var _ portssvc.ScopeSvcFacade = (*scopeService)(nil)

// ResolveActor loads the user's platform role. The role is never taken from the token.
func (s *scopeService) ResolveActor(ctx context.Context, userID string) (domain.Actor, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Actor{}, apperrors.NewForbiddenError("unknown or deleted user")
		}
		return domain.Actor{}, fmt.Errorf("failed to resolve actor %s: %w", userID, err)
	}
	return domain.Actor{UserID: user.UserID, Role: user.Role}, nil
}

// ComputeAccessScope implements portssvc.ScopeSvc
func (s *scopeService) ComputeAccessScope(ctx context.Context, actor domain.Actor) (domain.AccessScope, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return domain.UnrestrictedScope(), nil
	case domain.RoleOwner:
		buildings, err := s.ownershipRepo.FindAssignedBuildingIDs(ctx, actor.UserID)
		if err != nil {
			return domain.AccessScope{}, fmt.Errorf("failed to load buildings of owner %s: %w", actor.UserID, err)
		}
		rowIDs, err := s.ownershipRepo.FindTransactionIDsByContractOwner(ctx, actor.UserID)
		if err != nil {
			return domain.AccessScope{}, fmt.Errorf("failed to load contract transactions of owner %s: %w", actor.UserID, err)
		}
		return domain.AccessScope{BuildingIDs: buildings, CreatedBy: actor.UserID, RowIDs: rowIDs}, nil
	default:
		s.GetLogger(ctx).Warn("Role has no access to financial records",
			slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
		return domain.AccessScope{}, apperrors.NewForbiddenError("role " + string(actor.Role) + " has no access to financial records")
	}
}

// AuthorizeBuilding implements portssvc.ScopeSvc
func (s *scopeService) AuthorizeBuilding(ctx context.Context, actor domain.Actor, buildingID string) error {
	scope, err := s.ComputeAccessScope(ctx, actor)
	if err != nil {
		return err
	}
	if scope.Unrestricted {
		return nil
	}
	if buildingID != "" && slices.Contains(scope.BuildingIDs, buildingID) {
		return nil
	}
	return apperrors.NewForbiddenError("building is not assigned to you")
}
