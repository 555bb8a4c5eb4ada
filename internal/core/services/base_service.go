package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/property_ledger/internal/middleware"
	"github.com/SscSPs/property_ledger/internal/platform/retry"
)

// LedgerDefaults are applied when a request leaves the matching field empty.
type LedgerDefaults struct {
	RentDueDay    int
	Currency      string
	PaymentMethod string
}

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	Retry     retry.Policy
	Clock     func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
