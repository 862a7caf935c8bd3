// Package validate asserts that identifiers, pagination parameters and batch
// inputs are well formed before any request is made.
//
// Every failure is a PlatformError with code INVALID_INPUT whose message
// names the offending label and the violated constraint.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/jmgilman/go/errors"
)

// Limits enforced by the validators.
const (
	MaxIdentifierLength = 100
	MaxNumericID        = 100000
	MaxLimit            = 1000
	DefaultMinItems     = 1
	DefaultMaxItems     = 500
	MinConcurrency      = 1
	MaxConcurrency      = 50
)

// Identifier checks a resource identifier. Strings must be non-empty after
// trimming and at most MaxIdentifierLength characters; integers must be in
// [1, MaxNumericID].
func Identifier(identifier any, label string) error {
	label = labelOr(label, "identifier")

	switch v := identifier.(type) {
	case nil:
		return errors.Newf(errors.CodeInvalidInput, "%s identifier cannot be null", label)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return errors.Newf(errors.CodeInvalidInput, "%s identifier cannot be empty", label)
		}
		if utf8.RuneCountInString(trimmed) > MaxIdentifierLength {
			return errors.Newf(errors.CodeInvalidInput,
				"%s identifier must be at most %d characters", label, MaxIdentifierLength)
		}
		return nil
	case int:
		return numericID(int64(v), label)
	case int32:
		return numericID(int64(v), label)
	case int64:
		return numericID(v, label)
	case float64:
		if v != float64(int64(v)) {
			return errors.Newf(errors.CodeInvalidInput, "%s identifier must be a positive integer", label)
		}
		return numericID(int64(v), label)
	default:
		return errors.Newf(errors.CodeInvalidInput, "%s identifier must be a string or integer, got %T", label, identifier)
	}
}

func numericID(id int64, label string) error {
	if id < 1 {
		return errors.Newf(errors.CodeInvalidInput, "%s identifier must be a positive integer", label)
	}
	if id > MaxNumericID {
		return errors.Newf(errors.CodeInvalidInput,
			"%s identifier must be at most %d", label, MaxNumericID)
	}
	return nil
}

// Pagination checks an offset/limit pair.
func Pagination(offset, limit int) error {
	if offset < 0 {
		return errors.Newf(errors.CodeInvalidInput, "offset must be a non-negative integer, got %d", offset)
	}
	if limit < 1 || limit > MaxLimit {
		return errors.Newf(errors.CodeInvalidInput, "limit must be between 1 and %d, got %d", MaxLimit, limit)
	}
	return nil
}

// Length checks that n lies within [min, max]. Zero bounds fall back to
// DefaultMinItems and DefaultMaxItems.
func Length(n int, label string, min, max int) error {
	label = labelOr(label, "items")
	if min <= 0 {
		min = DefaultMinItems
	}
	if max <= 0 {
		max = DefaultMaxItems
	}
	if n < min || n > max {
		return errors.Newf(errors.CodeInvalidInput,
			"%s must contain between %d and %d items, got %d", label, min, max, n)
	}
	return nil
}

// Items checks the length of a slice, treating nil as "not an array".
func Items[T any](items []T, label string, min, max int) error {
	if items == nil {
		return errors.Newf(errors.CodeInvalidInput, "%s must be a list", labelOr(label, "items"))
	}
	return Length(len(items), label, min, max)
}

// BatchOptions checks a requested concurrency. Zero means unspecified.
func BatchOptions(concurrency int) error {
	if concurrency == 0 {
		return nil
	}
	if concurrency < MinConcurrency || concurrency > MaxConcurrency {
		return errors.Newf(errors.CodeInvalidInput,
			"concurrency must be between %d and %d, got %d", MinConcurrency, MaxConcurrency, concurrency)
	}
	return nil
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}
