package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&pgconn.PgError{Code: codeLockNotAvailable}))
	assert.True(t, IsTransient(&pgconn.PgError{Code: codeDeadlockDetected}))
	assert.True(t, IsTransient(fmt.Errorf("save: %w", &pgconn.PgError{Code: codeLockNotAvailable})))
	assert.True(t, IsTransient(mapWriteError(&pgconn.PgError{Code: codeLockNotAvailable}, "save")))
	assert.False(t, IsTransient(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, IsTransient(errors.New("boom")))
	assert.False(t, IsTransient(nil))
}

func TestMapWriteError(t *testing.T) {
	dup := mapWriteError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "idx_financial_transactions_reference"}, "failed to save transaction")
	assert.ErrorIs(t, dup, apperrors.ErrDuplicate)
	assert.Contains(t, dup.Error(), "idx_financial_transactions_reference")

	fk := mapWriteError(&pgconn.PgError{Code: codeForeignKeyViolation}, "failed to save transaction")
	assert.ErrorIs(t, fk, apperrors.ErrValidation)

	other := mapWriteError(errors.New("connection reset"), "failed to save transaction")
	assert.False(t, errors.Is(other, apperrors.ErrDuplicate))
	var appErr *apperrors.AppError
	assert.True(t, errors.As(other, &appErr))
	assert.Equal(t, 500, appErr.Code)
}
