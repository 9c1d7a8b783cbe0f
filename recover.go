package promise

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

const stackDepth = 32

// PanicError is the rejection reason used when a task submitted through Go,
// CtxGo, Submit or CtxSubmit panics. It carries the recovered value and the
// stack at the point of the panic.
//
// Panics inside Then callbacks are not wrapped; the recovered value itself
// becomes the rejection reason.
type PanicError struct {
	Value   any
	callers []uintptr
}

func newPanicError(skip int, value any) *PanicError {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	return &PanicError{
		Value:   value,
		callers: pcs[:n],
	}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\nstacktrace:%+v", e.Value, e.StackTrace())
}

// StackTrace makes PanicError compatible with github.com/pkg/errors
// formatting.
func (e *PanicError) StackTrace() errors.StackTrace {
	if e == nil {
		return nil
	}
	frames := make([]errors.Frame, len(e.callers))
	for i, pc := range e.callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}
