package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelInfo, "json", "/nowhere", ctxKey{})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	l.With(slog.String("component", "test")).DebugContext(ctx, "hidden")
	l.With(slog.String("component", "test")).InfoContext(ctx, "shown", slog.Int("books", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "test", rec["component"])
	assert.EqualValues(t, 3, rec["books"])
	assert.Contains(t, rec, slog.SourceKey)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, slog.LevelDebug, "text", "/nowhere", nil)
	require.NoError(t, err)

	l.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestNew_BadFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, slog.LevelDebug, "xml", "", nil)
	require.Error(t, err)
}
