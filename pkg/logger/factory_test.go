package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstack/notifykit/pkg/logger"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden at default level")
	log.Info("visible")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))

	log.Info("hello", logger.Component("socket"))

	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "component=socket")
}

func TestNew_InvalidFormatPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}

func TestNew_ContextValue(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextValue("session_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "sess-42")
	log.InfoContext(ctx, "with session")
	log.Info("without session")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "sess-42")
	assert.NotContains(t, lines[1], "sess-42")
}

func TestNew_ContextExtractors(t *testing.T) {
	t.Parallel()

	type userKey struct{}

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(
			func(ctx context.Context) (slog.Attr, bool) {
				if id, ok := ctx.Value(userKey{}).(string); ok {
					return slog.String("user_id", id), true
				}
				return slog.Attr{}, false
			},
			nil, // misconfigured entries are ignored
		),
	)

	// Extraction must survive derived loggers.
	scoped := log.With(logger.Component("store"))
	ctx := context.WithValue(context.Background(), userKey{}, "u1")
	scoped.InfoContext(ctx, "resyncing")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "u1", rec["user_id"])
	assert.Equal(t, "store", rec["component"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, slog.Attr{}, logger.NotificationID(""))
	assert.Equal(t, "notification_id", logger.NotificationID("n1").Key)
	assert.Equal(t, "attempt", logger.Attempt(3).Key)
}
