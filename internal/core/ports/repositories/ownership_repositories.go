package repositories

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// OwnershipReader walks the Tenant -> Apartment -> Floor -> Building -> Owner graph.
type OwnershipReader interface {
	// FindAssignedBuildingIDs lists the buildings assigned to an owner.
	FindAssignedBuildingIDs(ctx context.Context, ownerUserID string) ([]string, error)

	// FindTransactionIDsByContractOwner lists transactions on contracts the
	// user owns, limited to tenants housed in the user's assigned buildings.
	FindTransactionIDsByContractOwner(ctx context.Context, ownerUserID string) ([]string, error)

	// FindBuildingIDForTenant resolves the building of the tenant's current apartment.
	FindBuildingIDForTenant(ctx context.Context, tenantID string) (string, error)

	// FindApartmentIDForTenant returns the tenant's current apartment, or ""
	// when the tenant is not housed.
	FindApartmentIDForTenant(ctx context.Context, tenantID string) (string, error)

	// FindBuildingIDForApartment resolves the building of an apartment.
	FindBuildingIDForApartment(ctx context.Context, apartmentID string) (string, error)
}
