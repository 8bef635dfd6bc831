package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestRateLimiter_Burst(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := newRateLimiter(1, 3, clock.now)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(), "request %d", i)
	}
	assert.False(t, rl.Allow())

	clock.t = clock.t.Add(time.Second)
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimiter_RefillCapped(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := newRateLimiter(10, 2, clock.now)

	clock.t = clock.t.Add(time.Hour)
	assert.InDelta(t, 2.0, rl.Tokens(), 1e-9)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	clock.t = clock.t.Add(50 * time.Millisecond)
	assert.InDelta(t, 0.5, rl.Tokens(), 1e-9)
	assert.False(t, rl.Allow())
}

func TestRateLimiter_MinimumBurst(t *testing.T) {
	rl := NewRateLimiter(1, 0)
	assert.True(t, rl.Allow())
}
