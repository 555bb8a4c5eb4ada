package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/models"
	"github.com/SscSPs/property_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxContractRepository implements the contract repository ports using pgx.
type PgxContractRepository struct {
	BaseRepository
}

func newPgxContractRepository(base BaseRepository) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{BaseRepository: base}
}

const selectContract = `
	SELECT c.contract_id, c.tenant_id, c.apartment_id, c.owner_id, c.start_date, c.end_date,
	       c.monthly_rent, c.currency, c.security_fee, c.status,
	       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
	       f.building_id
	FROM contracts c
	LEFT JOIN apartments a ON a.apartment_id = c.apartment_id
	LEFT JOIN floors f ON f.floor_id = a.floor_id
	WHERE c.contract_id = $1`

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var m models.Contract
	err := row.Scan(
		&m.ContractID, &m.TenantID, &m.ApartmentID, &m.OwnerID, &m.StartDate, &m.EndDate,
		&m.MonthlyRent, &m.Currency, &m.SecurityFee, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.BuildingID,
	)
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainContract(m)
	return &c, nil
}

// FindContractByID retrieves a contract joined with its apartment's building.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	c, err := scanContract(r.Pool.QueryRow(ctx, selectContract, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("contract " + contractID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find contract by ID "+contractID, err)
	}
	return c, nil
}

// FindContractForUpdate locks the contract row inside tx.
func (r *PgxContractRepository) FindContractForUpdate(ctx context.Context, tx pgx.Tx, contractID string) (*domain.Contract, error) {
	c, err := scanContract(tx.QueryRow(ctx, selectContract+" FOR UPDATE OF c", contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("contract " + contractID + " not found")
		}
		return nil, mapWriteError(err, "failed to lock contract "+contractID)
	}
	return c, nil
}

// SaveContract inserts a new contract inside tx.
func (r *PgxContractRepository) SaveContract(ctx context.Context, tx pgx.Tx, contract domain.Contract) error {
	m := mapping.ToModelContract(contract)
	_, err := tx.Exec(ctx, `
		INSERT INTO contracts (
			contract_id, tenant_id, apartment_id, owner_id, start_date, end_date,
			monthly_rent, currency, security_fee, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ContractID, m.TenantID, m.ApartmentID, m.OwnerID, m.StartDate, m.EndDate,
		m.MonthlyRent, m.Currency, m.SecurityFee, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save contract "+m.ContractID)
	}
	return nil
}

// UpdateContractTerms writes a renewal.
func (r *PgxContractRepository) UpdateContractTerms(ctx context.Context, tx pgx.Tx, contractID string, endDate time.Time, monthlyRent decimal.Decimal, status domain.ContractStatus, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE contracts
		SET end_date = $2, monthly_rent = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE contract_id = $1`,
		contractID, endDate, monthlyRent, string(status), now, userID,
	)
	if err != nil {
		return mapWriteError(err, "failed to update contract "+contractID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("contract " + contractID + " not found")
	}
	return nil
}

// DeleteContract removes the contract row and reports whether it existed.
func (r *PgxContractRepository) DeleteContract(ctx context.Context, tx pgx.Tx, contractID string) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM contracts WHERE contract_id = $1`, contractID)
	if err != nil {
		return false, mapWriteError(err, "failed to delete contract "+contractID)
	}
	return cmdTag.RowsAffected() > 0, nil
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)
