package fanout_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstack/notifykit/pkg/fanout"
)

func TestRegistry_PublishOrder(t *testing.T) {
	t.Parallel()

	reg := fanout.New[int]()

	var got []string
	reg.Subscribe(func(int) { got = append(got, "first") })
	reg.Subscribe(func(int) { got = append(got, "second") })
	reg.Subscribe(func(int) { got = append(got, "third") })

	reg.Publish(1)
	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestRegistry_Unsubscribe(t *testing.T) {
	t.Parallel()

	t.Run("removed callback never fires again", func(t *testing.T) {
		t.Parallel()

		reg := fanout.New[int]()

		var a, b int
		unsubA := reg.Subscribe(func(int) { a++ })
		reg.Subscribe(func(int) { b++ })

		reg.Publish(1)
		unsubA()
		reg.Publish(2)
		reg.Publish(3)

		assert.Equal(t, 1, a)
		assert.Equal(t, 3, b)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("same callback registered twice is two subscriptions", func(t *testing.T) {
		t.Parallel()

		reg := fanout.New[int]()

		var calls int
		fn := func(int) { calls++ }
		unsubOne := reg.Subscribe(fn)
		reg.Subscribe(fn)
		require.Equal(t, 2, reg.Len())

		unsubOne()
		reg.Publish(1)

		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("unsubscribe is idempotent", func(t *testing.T) {
		t.Parallel()

		reg := fanout.New[int]()

		reg.Subscribe(func(int) {})
		unsub := reg.Subscribe(func(int) {})
		unsub()
		unsub()

		assert.Equal(t, 1, reg.Len())
	})
}

func TestRegistry_PanicIsolation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := fanout.New(fanout.WithLogger[string](logger))

	var before, after bool
	reg.Subscribe(func(string) { before = true })
	reg.Subscribe(func(string) { panic("subscriber bug") })
	reg.Subscribe(func(string) { after = true })

	require.NotPanics(t, func() { reg.Publish("event") })
	assert.True(t, before)
	assert.True(t, after)
}

func TestRegistry_NilSubscriber(t *testing.T) {
	t.Parallel()

	reg := fanout.New[int]()
	unsub := reg.Subscribe(nil)
	unsub()

	assert.Equal(t, 0, reg.Len())
	assert.NotPanics(t, func() { reg.Publish(1) })
}
