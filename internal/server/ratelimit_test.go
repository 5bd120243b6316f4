package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Allow("client-a"))
	}

	err := rl.Allow("client-a")
	require.Error(t, err)

	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 3, rlErr.Limit)
	assert.Greater(t, rlErr.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, rlErr.RetryAfter, time.Minute)
}

func TestRateLimiter_PerClientBudgets(t *testing.T) {
	rl := NewRateLimiter(1)

	require.NoError(t, rl.Allow("client-a"))
	require.Error(t, rl.Allow("client-a"))

	// A different client has its own budget.
	require.NoError(t, rl.Allow("client-b"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1)
	current := time.Now()
	rl.now = func() time.Time { return current }

	require.NoError(t, rl.Allow("client-a"))
	require.Error(t, rl.Allow("client-a"))

	current = current.Add(time.Minute + time.Second)
	require.NoError(t, rl.Allow("client-a"))
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(1)

	require.NoError(t, rl.Allow("client-a"))
	require.Error(t, rl.Allow("client-a"))

	rl.Reset()
	require.NoError(t, rl.Allow("client-a"))
}

func TestRateLimitError_Message(t *testing.T) {
	err := &RateLimitError{Limit: 60, RetryAfter: 30 * time.Second}
	assert.Contains(t, err.Error(), "60 requests per minute")
	assert.Contains(t, err.Error(), "30s")
}
