package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstCoalescesToOneCall(t *testing.T) {
	debouncer := New(30 * time.Millisecond)
	var calls int32

	for i := 0; i < 10; i++ {
		debouncer.Trigger(func() {
			atomic.AddInt32(&calls, 1)
		})
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 10*time.Millisecond)

	// No further calls after the quiet period.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSeparatedTriggersEachFire(t *testing.T) {
	debouncer := New(10 * time.Millisecond)
	var calls int32

	debouncer.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(40 * time.Millisecond)
	debouncer.Trigger(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStopCancelsPending(t *testing.T) {
	debouncer := New(20 * time.Millisecond)
	var calls int32

	debouncer.Trigger(func() { atomic.AddInt32(&calls, 1) })
	debouncer.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
