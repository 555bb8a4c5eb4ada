package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeLockNotAvailable    = "55P03"
	codeDeadlockDetected    = "40P01"
)

// IsTransient reports whether err carries a lock-wait timeout or a deadlock
// from Postgres. Those are the only failures a unit of work is retried on.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeLockNotAvailable || pgErr.Code == codeDeadlockDetected
}

// mapWriteError translates constraint violations into application sentinels.
// The original error stays in the chain so IsTransient still sees it.
func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperrors.NewAppError(http.StatusConflict, msg, fmt.Errorf("%w: %s: %w", apperrors.ErrDuplicate, pgErr.ConstraintName, err))
		case codeForeignKeyViolation, codeCheckViolation:
			return apperrors.NewAppError(http.StatusBadRequest, msg, fmt.Errorf("%w: %s: %w", apperrors.ErrValidation, pgErr.ConstraintName, err))
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}
