package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerSupersedesRequests(t *testing.T) {
	tr := NewTracker()

	first, doneFirst := tr.Begin(context.Background(), "pokemon/25")
	second, doneSecond := tr.Begin(context.Background(), "pokemon/25")

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())
	assert.Equal(t, 1, tr.Active())

	assert.ErrorIs(t, doneFirst(), ErrStale)
	assert.NoError(t, doneSecond())
	assert.ErrorIs(t, second.Err(), context.Canceled)
	assert.Zero(t, tr.Active())

	assert.NoError(t, doneSecond(), "done is idempotent")
}

func TestTrackerKeysAreIndependent(t *testing.T) {
	tr := NewTracker()

	a, doneA := tr.Begin(context.Background(), "a")
	_, doneB := tr.Begin(context.Background(), "b")
	assert.NoError(t, a.Err())
	assert.Equal(t, 2, tr.Active())

	tr.Cancel("b")
	assert.ErrorIs(t, doneB(), ErrStale)
	assert.NoError(t, doneA())
}

func TestTrackDiscardsStaleResult(t *testing.T) {
	tr := NewTracker()
	started := make(chan struct{})
	staleErr := make(chan error, 1)

	go func() {
		_, err := Track(context.Background(), tr, "berry", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "old", nil
		})
		staleErr <- err
	}()

	<-started
	v, err := Track(context.Background(), tr, "berry", func(ctx context.Context) (string, error) {
		return "new", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.ErrorIs(t, <-staleErr, ErrStale)
}
