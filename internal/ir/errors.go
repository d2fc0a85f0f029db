package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes transform errors.
type ErrorCode string

const (
	// ErrCodeHeadingLevel indicates a heading level outside 1..6.
	ErrCodeHeadingLevel ErrorCode = "HEADING_LEVEL"

	// ErrCodeMissingKey indicates a citation without a key.
	ErrCodeMissingKey ErrorCode = "MISSING_KEY"

	// ErrCodeConsumedInput indicates a body passed to an element that takes none.
	ErrCodeConsumedInput ErrorCode = "CONSUMED_INPUT"

	// ErrCodeUnsupportedFormat indicates an output format the element cannot produce.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// ErrCodeUnknownElement indicates an element this plugin does not transform.
	ErrCodeUnknownElement ErrorCode = "UNKNOWN_ELEMENT"

	// ErrCodeInvalidArgument indicates an argument that violates the manifest.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeMalformedEntry indicates a host list entry that cannot be decoded.
	ErrCodeMalformedEntry ErrorCode = "MALFORMED_ENTRY"

	// ErrCodeUnknownNote indicates a note-label whose note was never pushed.
	ErrCodeUnknownNote ErrorCode = "UNKNOWN_NOTE"
)

// TransformError is an invocation-local failure reported to the host.
// A transform that returns one produces no output and requests no pushes.
type TransformError struct {
	Code    ErrorCode
	Element string
	Message string
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s: %s (element=%s)", e.Code, e.Message, e.Element)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf creates a TransformError with a formatted message.
func Errorf(code ErrorCode, element, format string, args ...any) *TransformError {
	return &TransformError{
		Code:    code,
		Element: element,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the code of a (possibly wrapped) TransformError, or "".
func CodeOf(err error) ErrorCode {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// IsCode reports whether err is a TransformError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
