package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when a key stays held past the wait deadline.
var ErrNotAcquired = errors.New("lock not acquired")

const (
	DefaultTTL  = 10 * time.Second
	DefaultWait = 3 * time.Second
	retryEvery  = 50 * time.Millisecond
)

// Locker serializes work per key.
type Locker interface {
	// Acquire blocks until key is held or ctx/wait expires. The returned func releases it.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Do runs fn while holding key.
func Do(ctx context.Context, l Locker, key string, fn func(ctx context.Context) error) error {
	release, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

func LeaveKey(employeeID string) string {
	return "employee-leave:" + employeeID
}

func LoginHourKey(employeeID string) string {
	return "login-hour:" + employeeID
}
