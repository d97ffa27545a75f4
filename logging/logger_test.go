package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, LevelDebug)
	require.NoError(t, err)

	l.Info("hello", "k", 1)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	lines := decodeLines(t, string(data))
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.EqualValues(t, 1, lines[0]["k"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "ERROR", lines[1]["level"])
}

func TestChildLoggersCarryAttrs(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, LevelInfo)
	child := root.WithAgent("boat").WithRequest("r-1").With("odd")

	child.Info("moving", "cell", "(1,2)")
	root.Info("plain")

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "boat", lines[0]["agent"])
	assert.Equal(t, "r-1", lines[0]["request_id"])
	assert.Equal(t, "(1,2)", lines[0]["cell"])
	assert.NotContains(t, lines[1], "agent")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("trace"))
}

func TestNopLoggerAndNil(t *testing.T) {
	NopLogger().Error("ignored")
	var l *Logger
	l.Info("nil receiver is safe")
	assert.NoError(t, l.Close())
}
