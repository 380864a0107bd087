// Package app provides the main application structure and coordination.
package app

import (
	"errors"
	"fmt"
)

// Process-wide error sentinels.
var (
	// ErrQuit signals that the event loop ended normally, either after a
	// selection or on sweep.quit. Outside --rpc mode cmd/sweep exits 0 when
	// an item was selected and 1 otherwise.
	ErrQuit = errors.New("quit requested")

	// ErrTerminate signals a terminate() request (graceful shutdown, exit
	// code 0).
	ErrTerminate = errors.New("terminate requested")

	// ErrNoCandidates signals EOF on non-RPC stdin with no candidates
	// remaining (exit code 1, sweep.quit semantics).
	ErrNoCandidates = errors.New("no candidates: nothing to select")

	// ErrAlreadyRunning indicates the event loop is already running.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNotRunning indicates the event loop is not running.
	ErrNotRunning = errors.New("not running")

	// ErrTTYUnavailable indicates the TTY could not be acquired.
	ErrTTYUnavailable = errors.New("tty unavailable")

	// ErrPeerClosed indicates an RPC peer's connection closed or sent
	// malformed input.
	ErrPeerClosed = errors.New("rpc peer closed")

	// ErrInitialization indicates an initialization failure.
	ErrInitialization = errors.New("initialization failed")

	// ErrShutdownTimeout indicates shutdown timed out.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrInvalidOperation indicates a request named an operation the
	// method table does not recognize.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrComponentNotAvailable indicates a request targeted a component
	// that has not finished initializing (or never will, e.g. --rpc
	// without a tty attached).
	ErrComponentNotAvailable = errors.New("component not available")
)

// OperationError describes the failure of a single named operation against
// a target, e.g. a failed items_extend or a malformed bind() call.
type OperationError struct {
	Op      string
	Target  string
	Context string
	Err     error
}

// NewOperationError constructs an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext returns e with Context set, or nil if e is nil.
func (e *OperationError) WithContext(context string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Op
	if e.Target != "" {
		s += " " + e.Target
	}
	if e.Context != "" {
		s += " (" + e.Context + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped error, supporting errors.Is/errors.As.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches e itself or its wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == error(e) {
		return true
	}
	return errors.Is(e.Err, target)
}

// ComponentError describes a failure within a named subsystem (tty, rpc,
// ranker, config, ...), analogous to the teacher's per-subsystem error
// wrapping but without the editor-specific component set.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

// NewComponentError constructs a ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Component
	if e.Action != "" {
		s += ": " + e.Action
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped error, supporting errors.Is/errors.As.
func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target matches e itself or its wrapped error.
func (e *ComponentError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == error(e) {
		return true
	}
	return errors.Is(e.Err, target)
}

// RecoveredPanicError wraps a value recovered from a panic, together with
// the stack trace captured at the recover site.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError constructs a RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	s := fmt.Sprintf("panic: %v", e.Value)
	if e.Stack != "" {
		s += "\n" + e.Stack
	}
	return s
}

// ErrorList accumulates independent errors, e.g. per-peer teardown errors
// collected while shutting down several RPC connections.
type ErrorList struct {
	errs []error
}

// NewErrorList returns an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err, ignoring nil.
func (l *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

// Len returns the number of accumulated errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// HasErrors reports whether any error has been added.
func (l *ErrorList) HasErrors() bool {
	return len(l.errs) > 0
}

// Errors returns a copy of the accumulated errors.
func (l *ErrorList) Errors() []error {
	if len(l.errs) == 0 {
		return nil
	}
	out := make([]error, len(l.errs))
	copy(out, l.errs)
	return out
}

// First returns the first accumulated error, or nil if empty.
func (l *ErrorList) First() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// AsError returns l as an error, or nil if l is empty.
func (l *ErrorList) AsError() error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) Error() string {
	if l == nil || len(l.errs) == 0 {
		return ""
	}
	if len(l.errs) == 1 {
		return l.errs[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %s", len(l.errs), l.errs[0].Error())
}

// WrapError formats format with args and wraps err using %w, returning nil
// if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
