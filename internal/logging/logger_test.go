package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"warning": slog.LevelWarn,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	log.Debug("gesture transition", "to", "unlocking")
	require.Contains(t, buf.String(), `"msg":"gesture transition"`)
	require.Contains(t, buf.String(), `"to":"unlocking"`)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)
	log.Info("hidden")
	require.Empty(t, buf.String())
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "deskfolio.log")
	log, closeFn, err := New(Options{Path: path})
	require.NoError(t, err)
	log.Info("started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "msg=started"))
}

func TestNewRejectsFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml", Output: &bytes.Buffer{}})
	require.Error(t, err)
}
