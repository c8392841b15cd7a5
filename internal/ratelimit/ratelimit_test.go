package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter(limit int, window time.Duration) (*Limiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(limit, window)
	l.now = c.now
	return l, c
}

func TestLimiterAllow(t *testing.T) {
	l, c := newTestLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("ip")
		assert.True(t, ok, "request %d", i+1)
	}
	ok, retry := l.Allow("ip")
	assert.False(t, ok)
	assert.Equal(t, time.Hour, retry)

	ok, _ = l.Allow("other-ip")
	assert.True(t, ok, "keys are independent")

	c.t = c.t.Add(30 * time.Minute)
	_, retry = l.Allow("ip")
	assert.Equal(t, 30*time.Minute, retry)

	c.t = c.t.Add(time.Hour)
	ok, _ = l.Allow("ip")
	assert.True(t, ok, "window reset")
}

func TestLimiterRemaining(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)
	assert.Equal(t, 2, l.Remaining("k"))
	l.Allow("k")
	assert.Equal(t, 1, l.Remaining("k"))
	l.Allow("k")
	l.Allow("k")
	assert.Equal(t, 0, l.Remaining("k"))
}

func TestLimiterDisabled(t *testing.T) {
	l := New(0, time.Minute)
	for i := 0; i < 100; i++ {
		ok, _ := l.Allow("k")
		assert.True(t, ok)
	}
}

func TestLimiterCleanup(t *testing.T) {
	l, c := newTestLimiter(1, time.Minute)
	l.Allow("a")
	c.t = c.t.Add(2 * time.Minute)
	l.Cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets)
}
