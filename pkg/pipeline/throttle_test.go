package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := NewThrottle(50)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Execute(context.Background(), func() error { return nil }))
	}
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestThrottleUnlimited(t *testing.T) {
	th := NewThrottle(0)
	calls := 0
	for i := 0; i < 100; i++ {
		require.NoError(t, th.Execute(context.Background(), func() error { calls++; return nil }))
	}
	assert.Equal(t, 100, calls)
}

func TestThrottleHonorsContext(t *testing.T) {
	th := NewThrottle(1)
	require.NoError(t, th.Execute(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	ran := false
	err := th.Execute(ctx, func() error { ran = true; return nil })
	assert.Error(t, err)
	assert.False(t, ran)
}
