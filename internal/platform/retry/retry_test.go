package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errLock = errors.New("lock wait timeout")

func isLock(err error) bool { return errors.Is(err, errLock) }

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, isLock), func(context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, isLock), func(context.Context) error {
		calls++
		if calls == 1 {
			return errLock
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_SecondTransientFailurePropagates(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, isLock), func(context.Context) error {
		calls++
		return errLock
	})
	assert.ErrorIs(t, err, errLock)
	assert.Equal(t, 2, calls)
}

func TestDo_NonTransientNotRetried(t *testing.T) {
	boom := errors.New("foreign key violation")
	calls := 0
	err := Do(context.Background(), Once(time.Millisecond, isLock), func(context.Context) error {
		calls++
		return boom
	})
	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestDo_WaitsBackoff(t *testing.T) {
	var waited []int
	p := Policy{
		MaxAttempts: 3,
		Backoff: func(retry int) time.Duration {
			waited = append(waited, retry)
			return 0
		},
		IsTransient: isLock,
	}
	calls := 0
	_ = Do(context.Background(), p, func(context.Context) error {
		calls++
		return errLock
	})
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, waited)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Do(ctx, Once(time.Hour, isLock), func(context.Context) error {
		calls++
		return errLock
	})
	assert.ErrorIs(t, err, errLock)
	assert.Equal(t, 1, calls)
}
