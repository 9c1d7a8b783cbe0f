package executors

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGoExecutor(t *testing.T) {
	done := make(chan struct{})
	GoExecutor{}.Submit(func() {
		close(done)
	})
	<-done
}

func TestDirectExecutor(t *testing.T) {
	ran := false
	DirectExecutor{}.Submit(func() {
		ran = true
	})
	assert.True(t, ran, "direct executor runs on the submitting goroutine")
}

func TestPoolExecutor(t *testing.T) {
	const maxWorkers = 4
	pool := NewPoolExecutor(maxWorkers)

	var inFlight, peak int32
	var wg sync.WaitGroup
	gate := make(chan struct{})

	for i := 0; i < 16; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-gate
			atomic.AddInt32(&inFlight, -1)
		})
		if i == maxWorkers-1 {
			// the first batch saturates the pool; release it so the
			// remaining submits can proceed
			close(gate)
		}
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(maxWorkers))
}
