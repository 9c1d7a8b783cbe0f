package promise

// Callback transforms one channel's payload into the next link's outcome. It
// may return a plain value, return a Thenable to defer to another deferred
// value, or panic to reject the next link.
type Callback func(val any) any

// Thenable is any deferred value that supports two-channel continuation
// chaining. It is the structural test the engine applies to callback results:
// a result satisfying Thenable is not used as the continuation's value,
// instead the continuation adopts the nested value's eventual outcome. The
// check is deliberately structural so promises from other implementations
// chain transparently.
//
// The method set is intentionally minimal. A Thenable produced by this
// package is always a *Promise; assert it back when a link needs Catch, Get
// or State:
//
//	val, err := p.Then(fn, nil).(*Promise).Get()
type Thenable interface {
	Then(onFulfilled, onRejected Callback) Thenable
}

// Then derives a new deferred value from p by applying the callback matching
// p's eventual outcome. Either callback may be nil, in which case that
// channel is forwarded unchanged; a chain of Then calls without onRejected
// passes a rejection through untouched to the first link that handles it.
//
// A panic inside a callback rejects the continuation with the recovered
// value; it never propagates to the goroutine that settled p. Then itself
// never blocks, but if p is already settled the continuation may settle
// before Then returns.
//
// Then never modifies p: every call allocates an independent continuation,
// and multiple chains off the same Promise do not interfere.
func (p *Promise) Then(onFulfilled, onRejected Callback) Thenable {
	return chain(p, onFulfilled, onRejected)
}

// Catch is shorthand for Then(nil, onRejected).
func (p *Promise) Catch(onRejected Callback) Thenable {
	return chain(p, nil, onRejected)
}

func chain(source *Promise, onFulfilled, onRejected Callback) *Promise {
	pr := &propagator{
		next:        New(),
		onFulfilled: onFulfilled,
		onRejected:  onRejected,
	}
	source.cell.subscribe(pr.fulfilled, pr.rejected)
	return pr.next
}

// propagator carries one Then call's state: the continuation promise and the
// optional callbacks. At most one of fulfilled/rejected ever runs, because
// the source settles once.
type propagator struct {
	next        *Promise
	onFulfilled Callback
	onRejected  Callback
}

func (pr *propagator) fulfilled(val any) {
	if pr.onFulfilled == nil {
		pr.next.Fulfill(val)
		return
	}
	pr.settleFrom(pr.onFulfilled, val)
}

func (pr *propagator) rejected(reason any) {
	if pr.onRejected == nil {
		pr.next.Reject(reason)
		return
	}
	pr.settleFrom(pr.onRejected, reason)
}

// settleFrom settles the continuation from one callback invocation: a panic
// rejects it, a Thenable result is adopted, anything else fulfills it.
func (pr *propagator) settleFrom(cb Callback, arg any) {
	out, reason, panicked := invoke(cb, arg)
	if panicked {
		pr.next.Reject(reason)
		return
	}
	if t, ok := out.(Thenable); ok {
		// adopt the nested outcome instead of fulfilling with it; nesting
		// deeper than one level unwinds through the inner Then
		t.Then(func(val any) any {
			pr.next.Fulfill(val)
			return nil
		}, func(reason any) any {
			pr.next.Reject(reason)
			return nil
		})
		return
	}
	pr.next.Fulfill(out)
}

// invoke runs cb in a guarded scope, converting a panic into an explicit
// failure outcome.
func invoke(cb Callback, arg any) (out any, reason any, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			reason = r
			panicked = true
		}
	}()
	out = cb(arg)
	return
}
