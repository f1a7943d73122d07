package errors

import (
	"fmt"
	"runtime"
)

// How many frames wrap records when it first sees a bare error.
const stackTraceSize = 10

// StackFrame is one call site in a recorded trace.
type StackFrame struct {
	Func string
	File string
	Line int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s:%d - %s", f.File, f.Line, f.Func)
}

// Stack returns the trace recorded when err was first wrapped, or nil
// for errors that never passed through Wrap or WithDetail.
func Stack(err error) []StackFrame {
	if wErr, ok := err.(wrapperError); ok {
		return wErr.stack
	}
	return nil
}

// getStack captures up to size frames, skipping the innermost skip
// frames plus getStack itself.
func getStack(skip, size int) []StackFrame {
	pc := make([]uintptr, size)
	calls := runtime.Callers(skip+1, pc)

	trace := make([]StackFrame, 0, calls)
	for i := 0; i < calls; i++ {
		f := runtime.FuncForPC(pc[i])
		file, line := f.FileLine(pc[i] - 1)
		trace = append(trace, StackFrame{
			Func: f.Name(),
			File: file,
			Line: line,
		})
	}
	return trace
}
