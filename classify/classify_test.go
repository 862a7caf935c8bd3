package classify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestClassifyMessages(t *testing.T) {
	tests := []struct {
		msg       string
		kind      Kind
		retryable bool
	}{
		{"Network request failed", KindNetwork, true},
		{"request timeout after 30s", KindNetwork, true},
		{"device is offline", KindNetwork, true},
		{"read: ECONNRESET", KindNetwork, true},
		{"unexpected EOF", KindNetwork, true},
		{"Rate limit exceeded", KindRateLimit, true},
		{"HTTP 429", KindRateLimit, true},
		{"HTTP 404", KindNotFound, false},
		{"Pokemon not found", KindNotFound, false},
		{"limit must be between 1 and 1000", KindValidation, false},
		{"invalid identifier", KindValidation, false},
		{"identifier cannot be empty", KindValidation, false},
		{"something odd happened", KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rec := Classify(stderrors.New(tt.msg), "test")
			assert.Equal(t, tt.kind, rec.Kind)
			assert.Equal(t, tt.retryable, rec.Retryable)
			assert.Equal(t, tt.msg, rec.Message)
			assert.Equal(t, "test", rec.Context)
			assert.NotEmpty(t, rec.UserMessage)
			assert.False(t, rec.Timestamp.IsZero())
		})
	}
}

func TestClassifyOrderIsFirstMatch(t *testing.T) {
	// Network fragments win over rate-limit and not-found fragments.
	rec := Classify(stderrors.New("network timeout while handling 429"), "")
	assert.Equal(t, KindNetwork, rec.Kind)

	rec = Classify(stderrors.New("429: resource not found"), "")
	assert.Equal(t, KindRateLimit, rec.Kind)

	rec = Classify(stderrors.New("404: value must be valid"), "")
	assert.Equal(t, KindNotFound, rec.Kind)
}

func TestClassifyStructured(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"platform not found", errors.New(errors.CodeNotFound, "gone"), KindNotFound},
		{"platform network", errors.Wrap(stderrors.New("boom"), errors.CodeNetwork, "request failed"), KindNetwork},
		{"platform rate limit", errors.New(errors.CodeRateLimit, "slow down"), KindRateLimit},
		{"platform invalid", errors.New(errors.CodeInvalidInput, "bad"), KindValidation},
		{"status 404", statusErr(404), KindNotFound},
		{"status 429", statusErr(429), KindRateLimit},
		{"status 503", statusErr(503), KindNetwork},
		{"status 400", statusErr(400), KindValidation},
		{"status 401", statusErr(401), KindUnknown},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), KindNetwork},
		{"net error", &net.OpError{Op: "dial", Err: stderrors.New("refused")}, KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.err, "").Kind)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	rec := Classify(nil, "noop")
	assert.Equal(t, KindUnknown, rec.Kind)
	assert.False(t, rec.Retryable)
	assert.False(t, IsRetryable(nil))
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	wrapped := Wrap(cause, "getAbility")
	require.NotNil(t, wrapped)

	assert.Equal(t, UserMessage(KindNetwork), wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, KindNetwork, wrapped.Kind())
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(wrapped))
	assert.True(t, errors.IsRetryable(wrapped))
	assert.Equal(t, "getAbility", wrapped.Context()["operation"])

	// Wrapping again keeps the first classification.
	again := Wrap(fmt.Errorf("outer: %w", wrapped), "other")
	assert.Same(t, wrapped, again)
	assert.Equal(t, KindNetwork, Classify(again, "").Kind)

	assert.Nil(t, Wrap(nil, "x"))
}

func TestValidationUserMessageIncludesDetail(t *testing.T) {
	err := errors.New(errors.CodeInvalidInput, "ability identifier cannot be empty")
	wrapped := Wrap(err, "getAbility")
	assert.Contains(t, wrapped.Error(), "ability identifier cannot be empty")
	assert.False(t, wrapped.Record.Retryable)
}
