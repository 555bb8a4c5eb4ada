package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/platform/retry"
	"github.com/jackc/pgx/v5"
)

// txFunc is one attempt of a unit of work.
type txFunc func(ctx context.Context, tx pgx.Tx) error

// runInTx runs fn inside a database transaction and commits it. Any exit
// other than a successful commit rolls back, panics included. The whole
// unit, Begin through Commit, is retried under the service's policy so each
// attempt starts from a fresh transaction. A transient failure that outlives
// the policy is reported as ErrTransient.
func (s *BaseService) runInTx(ctx context.Context, op string, fn txFunc) error {
	attempt := 0
	err := retry.Do(ctx, s.Retry, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.GetLogger(ctx).Warn("Retrying unit of work after transient store failure",
				slog.String("operation", op), slog.Int("attempt", attempt))
		}
		return s.attemptTx(ctx, fn)
	})
	if err == nil {
		return nil
	}
	if s.Retry.IsTransient != nil && s.Retry.IsTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *BaseService) attemptTx(ctx context.Context, fn txFunc) error {
	tx, err := s.TxManager.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Roll back even when ctx is already cancelled.
		if rbErr := s.TxManager.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back unit of work")
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := s.TxManager.Commit(ctx, tx); err != nil {
		return err
	}
	committed = true
	return nil
}
