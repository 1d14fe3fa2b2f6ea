package rate_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterIsPerClient(t *testing.T) {
	l := New(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Equal(t, 2, l.Visitors())

	l.CleanupAllVisitors()
	assert.Zero(t, l.Visitors())
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestVisitorCleanupLoop(t *testing.T) {
	l := New(1, 1)
	l.GetVisitor("idle")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.StartVisitorCleanupLoop(ctx, 5*time.Millisecond, time.Nanosecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Visitors() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
