package core

import (
	"context"
	"errors"
)

// RetrievalError reports a failed retrieval gateway call. No partial response accompanies it.
type RetrievalError struct {
	Cause error
}

func (e *RetrievalError) Error() string {
	return "retrieval failed: " + e.Cause.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the call ran out of time.
func (e *RetrievalError) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// CompletionError reports a failed completion gateway call. No partial response accompanies it.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string {
	return "completion failed: " + e.Cause.Error()
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

func (e *CompletionError) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// IsTimeout reports whether err is a gateway error caused by a deadline.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
