package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_DeniesOverLimit(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewSlidingWindowLimiter(client, "reservations", time.Minute, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, current, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, i, current)
	}

	allowed, current, retryAfter, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3, current)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	// Другой клиент считается отдельно
	allowed, _, _, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_ZeroLimitDisabled(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewSlidingWindowLimiter(client, "reservations", time.Minute, 0)

	for i := 0; i < 10; i++ {
		allowed, _, _, err := limiter.Allow(context.Background(), "ip")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
