package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_DisabledJobIsNotRegistered(t *testing.T) {
	s := NewScheduler()
	s.AddJob("sweep", 0, func(ctx context.Context) error { return nil })
	s.AddJob("report", time.Minute, func(ctx context.Context) error { return nil })

	assert.Equal(t, []string{"report"}, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var runs int32
	s.AddJob("ok", time.Minute, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})
	s.AddJob("failing", time.Minute, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := NewScheduler()
	var runs int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := atomic.LoadInt32(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}
