package promise

import (
	"context"
)

// Go runs fn on the package executor and returns a Promise settled with its
// outcome: fulfilled with the value when err is nil, rejected with err
// otherwise. A panic in fn rejects the Promise with a *PanicError.
func Go(fn func() (any, error)) *Promise {
	return Submit(executor, fn)
}

// CtxGo is Go for context-aware tasks. ctx is passed through to fn; the
// returned Promise itself is not cancelable.
func CtxGo(ctx context.Context, fn func(ctx context.Context) (any, error)) *Promise {
	return CtxSubmit(ctx, executor, fn)
}

// Submit runs fn on e and returns a Promise settled with its outcome.
func Submit(e Executor, fn func() (any, error)) *Promise {
	p := New()
	e.Submit(func() {
		defer rejectOnPanic(p)
		val, err := fn()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Fulfill(val)
	})
	return p
}

// CtxSubmit is Submit for context-aware tasks.
func CtxSubmit(ctx context.Context, e Executor, fn func(ctx context.Context) (any, error)) *Promise {
	p := New()
	e.Submit(func() {
		defer rejectOnPanic(p)
		val, err := fn(ctx)
		if err != nil {
			p.Reject(err)
			return
		}
		p.Fulfill(val)
	})
	return p
}

func rejectOnPanic(p *Promise) {
	if r := recover(); r != nil {
		p.Reject(newPanicError(1, r))
	}
}
