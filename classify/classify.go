// Package classify maps arbitrary failures onto a small error taxonomy that
// drives retry decisions and user-facing messages.
package classify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

// Kind is the category of a classified failure.
type Kind string

const (
	KindNetwork    Kind = "NETWORK"
	KindRateLimit  Kind = "RATE_LIMIT"
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindUnknown    Kind = "UNKNOWN"
)

// Retryable reports whether failures of this kind are transient.
func (k Kind) Retryable() bool {
	return k == KindNetwork || k == KindRateLimit
}

// Code returns the platform error code matching the kind.
func (k Kind) Code() errors.ErrorCode {
	switch k {
	case KindNetwork:
		return errors.CodeNetwork
	case KindRateLimit:
		return errors.CodeRateLimit
	case KindNotFound:
		return errors.CodeNotFound
	case KindValidation:
		return errors.CodeInvalidInput
	default:
		return errors.CodeUnknown
	}
}

// Record is the outcome of classifying one failure.
type Record struct {
	Kind        Kind
	Message     string
	Retryable   bool
	UserMessage string
	Context     string
	Timestamp   time.Time
}

// StatusCoder is implemented by errors carrying an HTTP status.
type StatusCoder interface {
	HTTPStatusCode() int
}

var (
	networkFragments = []string{
		"network",
		"timeout",
		"timed out",
		"offline",
		"econnreset",
		"econnrefused",
		"connection refused",
		"connection reset",
		"no such host",
		"eof",
		"fetch failed",
	}
	rateLimitFragments  = []string{"rate limit", "429", "too many requests"}
	notFoundFragments   = []string{"404", "not found"}
	validationFragments = []string{
		"must be",
		"invalid",
		"identifier cannot be",
		"cannot be empty",
		"out of range",
		"validation",
	}
)

var userMessages = map[Kind]string{
	KindNetwork:    "Network connection problem. Please check your connection and try again.",
	KindRateLimit:  "Too many requests. Please wait a moment and try again.",
	KindNotFound:   "The requested Pokémon data could not be found.",
	KindValidation: "The request was invalid. Please check your input.",
	KindUnknown:    "An unexpected error occurred. Please try again.",
}

// UserMessage returns the user-facing message for a kind.
func UserMessage(k Kind) string {
	if msg, ok := userMessages[k]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

// Classify builds a Record for err. Structured information already on the
// error wins; otherwise the lower-cased message is searched in order and the
// first match decides.
func Classify(err error, label string) Record {
	rec := Record{
		Kind:      KindUnknown,
		Context:   label,
		Timestamp: time.Now(),
	}
	if err == nil {
		rec.UserMessage = UserMessage(KindUnknown)
		return rec
	}
	rec.Message = err.Error()

	kind, ok := structuredKind(err)
	if !ok {
		kind = messageKind(strings.ToLower(rec.Message))
	}

	rec.Kind = kind
	rec.Retryable = kind.Retryable()
	rec.UserMessage = UserMessage(kind)
	if kind == KindValidation {
		rec.UserMessage = fmt.Sprintf("%s (%s)", rec.UserMessage, validationDetail(err))
	}
	return rec
}

// IsRetryable classifies err and reports whether it should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return Classify(err, "").Retryable
}

func structuredKind(err error) (Kind, bool) {
	var classified *Error
	if stderrors.As(err, &classified) {
		return classified.Record.Kind, true
	}

	switch errors.GetCode(err) {
	case errors.CodeNetwork, errors.CodeTimeout, errors.CodeUnavailable:
		return KindNetwork, true
	case errors.CodeRateLimit:
		return KindRateLimit, true
	case errors.CodeNotFound:
		return KindNotFound, true
	case errors.CodeInvalidInput, errors.CodeInvalidConfig, errors.CodeSchemaFailed:
		return KindValidation, true
	}

	var sc StatusCoder
	if stderrors.As(err, &sc) {
		if kind, ok := statusKind(sc.HTTPStatusCode()); ok {
			return kind, true
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return KindNetwork, true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return KindNetwork, true
	}

	return "", false
}

func statusKind(status int) (Kind, bool) {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimit, true
	case status == http.StatusNotFound:
		return KindNotFound, true
	case status >= 500:
		return KindNetwork, true
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation, true
	case status >= 400:
		return KindUnknown, true
	}
	return "", false
}

func messageKind(msg string) Kind {
	switch {
	case containsAny(msg, networkFragments):
		return KindNetwork
	case containsAny(msg, rateLimitFragments):
		return KindRateLimit
	case containsAny(msg, notFoundFragments):
		return KindNotFound
	case containsAny(msg, validationFragments):
		return KindValidation
	}
	return KindUnknown
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func validationDetail(err error) string {
	var pe errors.PlatformError
	if stderrors.As(err, &pe) && pe.Message() != "" {
		return pe.Message()
	}
	return err.Error()
}
