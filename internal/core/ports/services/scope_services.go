package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// ActorResolverSvc turns an authenticated user id into an actor with a role.
type ActorResolverSvc interface {
	// ResolveActor loads the user's platform role.
	ResolveActor(ctx context.Context, userID string) (domain.Actor, error)
}

// ScopeSvc computes which financial rows an actor may touch.
type ScopeSvc interface {
	// ComputeAccessScope returns the unrestricted scope for admins, the
	// building/creator/contract scope for owners and ErrForbidden otherwise.
	ComputeAccessScope(ctx context.Context, actor domain.Actor) (domain.AccessScope, error)

	// AuthorizeBuilding checks that actor may write rows under buildingID.
	AuthorizeBuilding(ctx context.Context, actor domain.Actor, buildingID string) error
}

// ScopeSvcFacade combines the actor and scope services
type ScopeSvcFacade interface {
	ActorResolverSvc
	ScopeSvc
}
