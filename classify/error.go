package classify

import (
	"github.com/jmgilman/go/errors"
)

// Error is the single error surfaced to callers after a failure has been
// classified. Its message is the user-facing text; the original failure is
// kept as the cause.
type Error struct {
	Record Record
	cause  error
}

// Wrap classifies err and wraps it. An err that is already an *Error is
// returned unchanged.
func Wrap(err error, label string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{Record: Classify(err, label), cause: err}
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	return e.Record.UserMessage
}

// Unwrap returns the original failure.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the classified kind.
func (e *Error) Kind() Kind {
	return e.Record.Kind
}

// Code implements errors.PlatformError.
func (e *Error) Code() errors.ErrorCode {
	return e.Record.Kind.Code()
}

// Classification implements errors.PlatformError.
func (e *Error) Classification() errors.ErrorClassification {
	if e.Record.Retryable {
		return errors.ClassificationRetryable
	}
	return errors.ClassificationPermanent
}

// Message implements errors.PlatformError.
func (e *Error) Message() string {
	return e.Record.UserMessage
}

// Context implements errors.PlatformError.
func (e *Error) Context() map[string]interface{} {
	return map[string]interface{}{
		"operation": e.Record.Context,
		"kind":      string(e.Record.Kind),
		"cause":     e.Record.Message,
		"timestamp": e.Record.Timestamp,
	}
}

var _ errors.PlatformError = (*Error)(nil)
