package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestJSONLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "pruning", "count", 0)
	log.Info(ctx, "started", "address", ":50051")
	log.Warn(ctx, "prune failed", "error", "timeout")
	log.Error(ctx, "gRPC server error", "error", "bind")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	want := []struct{ level, msg, key string }{
		{"DEBUG", "pruning", "count"},
		{"INFO", "started", "address"},
		{"WARN", "prune failed", "error"},
		{"ERROR", "gRPC server error", "error"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, lines[i]["level"])
		assert.Equal(t, w.msg, lines[i]["msg"])
		assert.Contains(t, lines[i], w.key)
	}
}

func TestJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "warn")

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "k", "v")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])
	assert.Equal(t, "v", lines[0]["k"])
}

func TestSlogLogger_WithKeepsParentClean(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, "info")
	child := parent.With("module", "session_store")

	child.Info(context.Background(), "child")
	parent.Info(context.Background(), "parent")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "session_store", lines[0]["module"])
	assert.NotContains(t, lines[1], "module")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() {
		l.With("a", 1).Info(context.Background(), "ignored")
		l.Error(context.TODO(), "ignored")
	})
}
