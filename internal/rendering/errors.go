package rendering

import (
	"errors"
	"fmt"
)

// ErrorKind classifies render failures so callers can decide whether a
// retry makes sense. Nothing in this package retries on its own.
type ErrorKind int

const (
	// KindInvalidParameter marks caller errors: bad format, quality,
	// threshold, offset or limit. Not retryable.
	KindInvalidParameter ErrorKind = iota
	// KindContentNotAvailable means the resolved content source has
	// nothing to render. Not retryable.
	KindContentNotAvailable
	// KindRenderTimeout means the content load exceeded the render
	// deadline. Transient; the caller may retry.
	KindRenderTimeout
	// KindRenderFailure covers automation errors, corrupt pages and
	// encoder failures. May or may not be transient.
	KindRenderFailure
	// KindSessionUnavailable means the browser session could not be
	// established or re-established.
	KindSessionUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindContentNotAvailable:
		return "content_not_available"
	case KindRenderTimeout:
		return "render_timeout"
	case KindRenderFailure:
		return "render_failure"
	case KindSessionUnavailable:
		return "session_unavailable"
	default:
		return "unknown"
	}
}

// Error carries a failure kind alongside the message so the HTTP layer can
// map it to a status code and the caller can judge retryability.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a typed render error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError attaches a kind to an underlying error.
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the ErrorKind from err, defaulting to KindRenderFailure
// for untyped errors.
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindRenderFailure
}
