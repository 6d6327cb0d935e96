package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/async"
)

func TestAsyncAwait(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	result, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.True(t, f.IsComplete())
}

func TestAsyncPropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := async.Async(context.Background(), "x", func(_ context.Context, _ string) (string, error) {
		return "", wantErr
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, wantErr)
}

func TestAsyncPreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
		ran = true
		return 0, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran, "fn must not run once the context is canceled")
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	close(release)
	result, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, result)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	double := func(_ context.Context, n int) (int, error) { return n * 2, nil }
	fail := func(_ context.Context, n int) (int, error) { return 0, errors.New("nope") }

	results, err := async.WaitAll(
		async.Async(context.Background(), 1, double),
		async.Async(context.Background(), 2, double),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, results)

	_, err = async.WaitAll(
		async.Async(context.Background(), 1, double),
		async.Async(context.Background(), 1, fail),
	)
	assert.Error(t, err)
}
