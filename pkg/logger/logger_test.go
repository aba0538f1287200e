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

	"github.com/dmitrymomot/coursemail/pkg/logger"
)

type ctxKey struct{}

func traceAttr(ctx context.Context) (slog.Attr, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("trace", v), true
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: slog.LevelInfo}, logger.WithOutput(&buf))
		log.Info("hello", "to", "a@example.com")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "a@example.com", rec["to"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Format: "TEXT"}, logger.WithOutput(&buf))
		log.Info("hello")

		assert.True(t, strings.HasPrefix(buf.String(), "time="))
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: slog.LevelWarn}, logger.WithOutput(&buf))
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("extractors read context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{}, logger.WithOutput(&buf), logger.WithExtractors(traceAttr, nil))

		ctx := context.WithValue(context.Background(), ctxKey{}, "t-1")
		log.InfoContext(ctx, "with trace")
		log.Info("without trace")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"trace":"t-1"`)
		assert.NotContains(t, lines[1], "trace")
	})
}

func TestNewLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("no extractors returns next", func(t *testing.T) {
		t.Parallel()

		next := slog.NewTextHandler(&bytes.Buffer{}, nil)
		assert.Same(t, next, logger.NewLogHandlerDecorator(next, nil))
	})

	t.Run("attrs and groups keep extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), traceAttr)
		log := slog.New(h).With("static", "x")

		ctx := context.WithValue(context.Background(), ctxKey{}, "t-2")
		log.InfoContext(ctx, "msg")

		assert.Contains(t, buf.String(), `"static":"x"`)
		assert.Contains(t, buf.String(), `"trace":"t-2"`)
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
