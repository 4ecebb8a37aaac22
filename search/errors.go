package search

import "errors"

// ErrNoSolution indicates the frontier emptied before the goal was reached.
// Find and Step report this outcome as false / StatusExhausted; the sentinel
// only appears wrapped inside cursor errors after an exhausted run.
var ErrNoSolution = errors.New("no path to goal")

// ErrCapacity indicates a push onto a Successors buffer that already holds
// its configured limit.
var ErrCapacity = errors.New("successor buffer capacity exceeded")

// ErrAllocation indicates a Successors buffer could not reserve the
// requested capacity.
var ErrAllocation = errors.New("successor buffer allocation failed")

// ErrInvalidCursor indicates the path cursor was used without a successful
// search, or Next was called before First.
var ErrInvalidCursor = errors.New("path cursor used without a completed search")

// ErrPathEnd is returned by Next once the goal state has been yielded.
var ErrPathEnd = errors.New("end of path")

// ErrNotInitialized indicates Step was called before Init (or after Cleanup).
var ErrNotInitialized = errors.New("search not initialized")

// ErrMaxExpansions indicates the expansion budget set with WithMaxExpansions
// was spent before the search finished.
var ErrMaxExpansions = errors.New("search exceeded maximum expansions")

// EngineError represents an error from Engine operations.
//
// Code is a stable machine-readable identifier; Cause, when set, is the
// underlying error and is reachable through errors.Is / errors.As.
type EngineError struct {
	Message string
	Code    string
	Cause   error
}

func (e *EngineError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}
