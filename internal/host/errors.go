package host

import (
	"errors"
	"fmt"
)

// RuntimeError is a failure of the compile as a whole, as opposed to an
// invocation error, which is recorded in the trace and skipped.
type RuntimeError struct {
	Code     RuntimeErrorCode
	Message  string
	Document string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeDeadlock indicates pending invocations that wait on each other.
	ErrCodeDeadlock RuntimeErrorCode = "DEADLOCK"

	// ErrCodeQuotaExceeded indicates the compile exceeded its step limit.
	ErrCodeQuotaExceeded RuntimeErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeUndeclaredPush indicates a push to a variable the element did not
	// declare in the manifest.
	ErrCodeUndeclaredPush RuntimeErrorCode = "UNDECLARED_PUSH"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("%s: %s (document=%s)", e.Code, e.Message, e.Document)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDeadlock reports whether err is a scheduling deadlock.
func IsDeadlock(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Code == ErrCodeDeadlock
}

// IsQuotaError reports whether err is a step limit error.
func IsQuotaError(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Code == ErrCodeQuotaExceeded
}
