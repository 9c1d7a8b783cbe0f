package promise

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

const (
	statePending uint32 = iota
	stateSettling
	stateFulfilled
	stateRejected
)

// cell is the single-assignment outcome shared by a Promise and everything
// subscribed to it. Settlement and subscription are lock-free; the done
// channel is only created when someone blocks on the outcome.
//
// Listeners are kept as a Treiber stack (most recent registration first) and
// reversed at settlement so they fire in registration order. Chained promises
// rely on that order.
type cell struct {
	noCopy noCopy

	state atomic.Uint32
	done  chan struct{}
	once  sync.Once

	value  any // written before state becomes stateFulfilled
	reason any // written before state becomes stateRejected

	stack unsafe.Pointer // *listener
}

func newCell() *cell {
	return &cell{}
}

func (c *cell) lazyInit() {
	c.once.Do(func() {
		c.done = make(chan struct{})
	})
}

// settle moves the cell from pending to its final state and fires the
// matching listener channel. It returns false without side effects if the
// cell is already settled (or being settled by another goroutine).
func (c *cell) settle(final uint32, outcome any) bool {
	if !c.state.CompareAndSwap(statePending, stateSettling) {
		return false
	}
	if final == stateFulfilled {
		c.value = outcome
	} else {
		c.reason = outcome
	}
	c.state.Store(final)
	c.lazyInit()
	close(c.done)

	for {
		head := (*listener)(atomic.SwapPointer(&c.stack, nil))
		if head == nil {
			return true
		}
		// detach the whole stack, then fire oldest first
		for _, l := range stackInOrder(head) {
			l.fire(final, outcome)
		}
	}
}

// subscribe registers one listener node carrying both channels; exactly one
// of its callbacks fires, once, when the cell settles. If the cell is already
// settled the matching callback runs inline before subscribe returns.
func (c *cell) subscribe(onFulfilled, onRejected func(any)) {
	l := &listener{onFulfilled: onFulfilled, onRejected: onRejected}
	for {
		old := (*listener)(atomic.LoadPointer(&c.stack))

		if s := c.state.Load(); s == stateFulfilled || s == stateRejected {
			l.fire(s, c.outcome(s))
			return
		}

		l.next = old
		if atomic.CompareAndSwapPointer(&c.stack, unsafe.Pointer(old), unsafe.Pointer(l)) {
			// settle may have drained the stack between our state check and
			// the push, so double check; fire dedupes via l.once
			if s := c.state.Load(); s == stateFulfilled || s == stateRejected {
				l.fire(s, c.outcome(s))
			}
			return
		}
	}
}

func (c *cell) outcome(s uint32) any {
	if s == stateFulfilled {
		return c.value
	}
	return c.reason
}

// wait blocks until the cell settles and returns the final state and outcome.
func (c *cell) wait() (uint32, any) {
	s := c.state.Load()
	if s == stateFulfilled || s == stateRejected {
		return s, c.outcome(s)
	}
	c.lazyInit()
	<-c.done
	s = c.state.Load()
	return s, c.outcome(s)
}

func (c *cell) isSettled() bool {
	s := c.state.Load()
	return s == stateFulfilled || s == stateRejected
}

type listener struct {
	once sync.Once

	onFulfilled func(any)
	onRejected  func(any)
	next        *listener
}

func (l *listener) fire(s uint32, outcome any) {
	l.once.Do(func() {
		if s == stateFulfilled {
			if l.onFulfilled != nil {
				l.onFulfilled(outcome)
			}
			return
		}
		if l.onRejected != nil {
			l.onRejected(outcome)
		}
	})
}

// stackInOrder returns the detached stack oldest registration first.
func stackInOrder(head *listener) []*listener {
	n := 0
	for l := head; l != nil; l = l.next {
		n++
	}
	ordered := make([]*listener, n)
	for l := head; l != nil; l = l.next {
		n--
		ordered[n] = l
	}
	return ordered
}

// noCopy 可以添加到首次使用后不得被复制的结构体中。
//
// 详情请参见：https://golang.org/issues/8005#issuecomment-190753527
//
// 注意：由于 Lock 和 Unlock 方法，不得嵌入此结构体。
type noCopy struct{}

// Lock 是一个空操作，由 `go vet` 的 -copylocks 检查器使用。
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
