package fanout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Registry is an ordered list of callbacks that all receive every published
// value. It decouples an event source from its consumers: the socket layer
// publishes into a registry, UI-facing code subscribes.
//
// Dispatch is synchronous and follows registration order. Each callback runs
// inside its own recover boundary, so a panicking subscriber is logged and
// skipped without affecting delivery to the rest.
//
// All methods are safe for concurrent use.
type Registry[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	logger  *slog.Logger
}

type entry[T any] struct {
	id string
	fn func(T)
}

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithLogger sets the logger used to report panicking subscribers.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Registry[T]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New[T any](opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers fn and returns a closure that removes exactly this
// registration. Registering the same function twice yields two independent
// subscriptions; the returned closure is idempotent.
func (r *Registry[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	id := uuid.New().String()

	r.mu.Lock()
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.entries {
			if e.id == id {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every currently registered callback with v, in
// registration order. The subscriber list is snapshotted before dispatch, so
// callbacks that subscribe or unsubscribe during delivery take effect on the
// next publish.
func (r *Registry[T]) Publish(v T) {
	r.mu.Lock()
	snapshot := make([]entry[T], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	for _, e := range snapshot {
		r.invoke(e, v)
	}
}

// invoke runs one callback inside a recover boundary.
func (r *Registry[T]) invoke(e entry[T], v T) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.LogAttrs(context.Background(), slog.LevelError, "fanout subscriber panicked",
				slog.String("subscription_id", e.id),
				slog.Any("panic", rec),
			)
		}
	}()
	e.fn(v)
}

// Len returns the number of active subscriptions.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
