// Package promise provides a two-channel deferred-value primitive with
// JavaScript-style continuation chaining.
// Inspired by https://github.com/jizhuozhi/go-future
package promise

import (
	"github.com/pkg/errors"
)

// State describes the outcome of a Promise.
type State uint32

const (
	// Pending means the Promise has not settled yet.
	Pending State = iota
	// Fulfilled means the Promise settled with a value.
	Fulfilled
	// Rejected means the Promise settled with a reason.
	Rejected
)

func (s State) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Promise is a single-assignment deferred value with two outcome channels.
//
// A Promise starts pending and settles exactly once, either fulfilled with a
// value or rejected with a reason. Settlement is permanent: later Fulfill and
// Reject calls are no-ops. Listeners registered on a channel fire in
// registration order, each exactly once; registering on an already settled
// Promise fires the listener immediately in the caller's goroutine.
//
// The holder of a Promise is both its producer (Fulfill/Reject) and its
// consumer (Then/Get); hand out the Thenable returned by Then when the
// consumer must not be able to settle.
//
// A Promise must not be copied after first use.
type Promise struct {
	cell *cell
}

// New creates a pending Promise.
func New() *Promise {
	return &Promise{cell: newCell()}
}

// Resolved creates a Promise already fulfilled with val.
func Resolved(val any) *Promise {
	p := New()
	p.cell.settle(stateFulfilled, val)
	return p
}

// RejectedWith creates a Promise already rejected with reason.
func RejectedWith(reason any) *Promise {
	p := New()
	p.cell.settle(stateRejected, reason)
	return p
}

// Fulfill settles the Promise with val. It reports whether this call took
// effect; it returns false and changes nothing if the Promise is already
// settled.
func (p *Promise) Fulfill(val any) bool {
	return p.cell.settle(stateFulfilled, val)
}

// Reject settles the Promise with reason. It reports whether this call took
// effect; it returns false and changes nothing if the Promise is already
// settled.
func (p *Promise) Reject(reason any) bool {
	return p.cell.settle(stateRejected, reason)
}

// OnFulfilled registers fn on the fulfillment channel. fn is called with the
// value at settlement, or immediately if the Promise is already fulfilled. It
// is never called if the Promise rejects.
//
// NOTE: fn runs in the goroutine that settles the Promise and should not
// block.
func (p *Promise) OnFulfilled(fn func(val any)) {
	p.cell.subscribe(fn, nil)
}

// OnRejected registers fn on the rejection channel. fn is called with the
// reason at settlement, or immediately if the Promise is already rejected. It
// is never called if the Promise fulfills.
//
// NOTE: fn runs in the goroutine that settles the Promise and should not
// block.
func (p *Promise) OnRejected(fn func(reason any)) {
	p.cell.subscribe(nil, fn)
}

// State returns the current outcome state.
func (p *Promise) State() State {
	switch p.cell.state.Load() {
	case stateFulfilled:
		return Fulfilled
	case stateRejected:
		return Rejected
	default:
		return Pending
	}
}

// IsSettled reports whether the Promise has been fulfilled or rejected.
func (p *Promise) IsSettled() bool {
	return p.cell.isSettled()
}

// Get blocks until the Promise settles and returns its outcome. A rejection
// reason that is an error is returned as is; any other reason is wrapped into
// an error carrying a stack trace.
func (p *Promise) Get() (any, error) {
	s, outcome := p.cell.wait()
	if s == stateFulfilled {
		return outcome, nil
	}
	if err, ok := outcome.(error); ok {
		return nil, err
	}
	return nil, errors.Errorf("promise rejected: %v", outcome)
}
