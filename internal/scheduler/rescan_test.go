package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 * * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every hour"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"), "seconds field is not accepted")
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Every hour at :00", GetCronDescription("0 * * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestRescanScheduler_StartStop(t *testing.T) {
	calls := 0
	s := NewRescanScheduler(ScanTriggerFunc(func() error {
		calls++
		return nil
	}), "0 * * * *")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	require.NoError(t, s.Start(ctx), "second start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
	assert.Zero(t, calls)
}

func TestRescanScheduler_StopsWithContext(t *testing.T) {
	s := NewRescanScheduler(ScanTriggerFunc(func() error { return nil }), "*/15 * * * *")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestRescanScheduler_InvalidSchedule(t *testing.T) {
	s := NewRescanScheduler(ScanTriggerFunc(func() error { return nil }), "nope")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestRescanScheduler_RunNow(t *testing.T) {
	fired := make(chan struct{}, 2)
	s := NewRescanScheduler(ScanTriggerFunc(func() error {
		fired <- struct{}{}
		return errors.New("queue closed")
	}), "0 * * * *")

	s.RunNow()
	s.RunNow()

	assert.Len(t, fired, 2)
	assert.Equal(t, int64(2), s.Triggers())
}
