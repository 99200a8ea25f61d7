package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a context, reporting whether
// the value was present. Extractors run on every log call, so session- and
// request-scoped values (user id, notification id) stay current without
// rebuilding loggers per scope.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler enriches records with attributes extracted from the log
// call's context before handing them to the format handler. The factory
// installs it only when extractors are registered.
type contextHandler struct {
	base       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(base slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return base
	}
	return &contextHandler{base: base, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var attrs []slog.Attr
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			attrs = append(attrs, attr)
		}
	}
	if len(attrs) > 0 {
		rec = rec.Clone()
		rec.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{base: h.base.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{base: h.base.WithGroup(name), extractors: h.extractors}
}
