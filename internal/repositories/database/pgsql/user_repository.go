package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxUserRepository reads users and the building ownership graph.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(base BaseRepository) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: base}
}

// FindUserByID retrieves a specific user by their ID. Soft-deleted users are not found.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, `
		SELECT user_id, name, role, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL`, userID,
	).Scan(&m.UserID, &m.Name, &m.Role, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user " + userID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find user by ID "+userID, err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// FindAssignedBuildingIDs lists the buildings assigned to an owner.
func (r *PgxUserRepository) FindAssignedBuildingIDs(ctx context.Context, ownerUserID string) ([]string, error) {
	return r.collectIDs(ctx, `
		SELECT building_id FROM building_owners WHERE owner_user_id = $1 ORDER BY building_id`, ownerUserID)
}

// FindTransactionIDsByContractOwner lists transactions on contracts the user
// owns whose tenant's current apartment lies in a building assigned to them.
func (r *PgxUserRepository) FindTransactionIDsByContractOwner(ctx context.Context, ownerUserID string) ([]string, error) {
	return r.collectIDs(ctx, `
		SELECT t.transaction_id
		FROM financial_transactions t
		JOIN contracts c ON c.contract_id = t.contract_id
		JOIN tenants tn ON tn.tenant_id = t.tenant_id
		JOIN apartments a ON a.apartment_id = tn.apartment_id
		JOIN floors f ON f.floor_id = a.floor_id
		JOIN building_owners bo ON bo.building_id = f.building_id AND bo.owner_user_id = c.owner_id
		WHERE c.owner_id = $1
		ORDER BY t.transaction_id`, ownerUserID)
}

// FindBuildingIDForTenant resolves the building of the tenant's current
// apartment. A tenant without an apartment resolves to "".
func (r *PgxUserRepository) FindBuildingIDForTenant(ctx context.Context, tenantID string) (string, error) {
	return r.findBuildingID(ctx, "tenant", tenantID, `
		SELECT f.building_id
		FROM tenants tn
		LEFT JOIN apartments a ON a.apartment_id = tn.apartment_id
		LEFT JOIN floors f ON f.floor_id = a.floor_id
		WHERE tn.tenant_id = $1`)
}

// FindApartmentIDForTenant returns the tenant's current apartment.
func (r *PgxUserRepository) FindApartmentIDForTenant(ctx context.Context, tenantID string) (string, error) {
	var apartmentID *string
	err := r.Pool.QueryRow(ctx, `SELECT apartment_id FROM tenants WHERE tenant_id = $1`, tenantID).Scan(&apartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("tenant " + tenantID + " not found")
		}
		return "", apperrors.NewAppError(500, "failed to resolve apartment of tenant "+tenantID, err)
	}
	if apartmentID == nil {
		return "", nil
	}
	return *apartmentID, nil
}

// FindBuildingIDForApartment resolves the building of an apartment.
func (r *PgxUserRepository) FindBuildingIDForApartment(ctx context.Context, apartmentID string) (string, error) {
	return r.findBuildingID(ctx, "apartment", apartmentID, `
		SELECT f.building_id
		FROM apartments a
		JOIN floors f ON f.floor_id = a.floor_id
		WHERE a.apartment_id = $1`)
}

func (r *PgxUserRepository) findBuildingID(ctx context.Context, kind, id, query string) (string, error) {
	var buildingID *string
	if err := r.Pool.QueryRow(ctx, query, id).Scan(&buildingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError(kind + " " + id + " not found")
		}
		return "", apperrors.NewAppError(500, "failed to resolve building of "+kind+" "+id, err)
	}
	if buildingID == nil {
		return "", nil
	}
	return *buildingID, nil
}

func (r *PgxUserRepository) collectIDs(ctx context.Context, query string, arg string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ownership graph", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ownership graph", err)
	}
	return ids, nil
}

var (
	_ portsrepo.UserReader      = (*PgxUserRepository)(nil)
	_ portsrepo.OwnershipReader = (*PgxUserRepository)(nil)
)
