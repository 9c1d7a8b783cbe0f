package executors

// GoExecutor runs every task on a fresh goroutine.
type GoExecutor struct{}

func (GoExecutor) Submit(f func()) {
	go f()
}

// DirectExecutor runs tasks synchronously on the submitting goroutine. Useful
// for deterministic settlement in tests.
type DirectExecutor struct{}

func (DirectExecutor) Submit(f func()) {
	f()
}

// PoolExecutor runs tasks on goroutines bounded by a semaphore. Submit blocks
// while maxWorkers tasks are in flight.
type PoolExecutor struct {
	sem chan struct{}
}

func NewPoolExecutor(maxWorkers int) *PoolExecutor {
	return &PoolExecutor{
		sem: make(chan struct{}, maxWorkers),
	}
}

func (p *PoolExecutor) Submit(f func()) {
	p.sem <- struct{}{}
	go func() {
		defer func() { <-p.sem }()
		f()
	}()
}
