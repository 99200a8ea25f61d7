package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstack/notifykit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		got, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.True(t, f.IsComplete())
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		f := async.Async(context.Background(), func(ctx context.Context) (int, error) {
			return 0, wantErr
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("pre-cancelled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		f := async.Async(ctx, func(ctx context.Context) (int, error) {
			called = true
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("await with timeout", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), func(ctx context.Context) (int, error) {
			time.Sleep(time.Second)
			return 1, nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("second failed")
	first := async.Async(context.Background(), func(ctx context.Context) (int, error) { return 1, nil })
	second := async.Async(context.Background(), func(ctx context.Context) (int, error) { return 0, wantErr })
	third := async.Async(context.Background(), func(ctx context.Context) (int, error) { return 3, nil })

	results, err := async.WaitAll(first, second, third)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, []int{1, 0, 3}, results)
}
