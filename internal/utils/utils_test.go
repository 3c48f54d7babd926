package utils

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground/internal/catalog"
	"playground/internal/view"
)

func TestConfigDefaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, catalog.DefaultManifest, cfg.Catalog.Manifest)
	assert.Equal(t, view.DefaultEmbedHost, cfg.Catalog.EmbedHostPrefix)
	assert.Equal(t, 250*time.Millisecond, cfg.Catalog.WatchDebounce)
	assert.Equal(t, "memory", cfg.Prefs.Backend)
	assert.False(t, cfg.Launch.SanitizeEmbed)
	assert.NotEmpty(t, cfg.Catalog.Root)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "playground.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  addr: ":9090"
catalog:
  root: "`+dir+`"
  watch: true
launch:
  sanitize_embed: true
`), 0o644))
	t.Setenv("PLAYGROUND_PREFS_BACKEND", "file")

	v, err := NewViper(file)
	require.NoError(t, err)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Catalog.Watch)
	assert.True(t, cfg.Launch.SanitizeEmbed)
	assert.Equal(t, "file", cfg.Prefs.Backend)
	assert.Equal(t, filepath.Join(dir, "static"), cfg.Static.Dir)
}

func TestConfigMissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewLoggerWritesRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "playground.log")
	logger, closer := NewLogger(LogConfig{Level: "info", Format: "json", File: file, MaxSize: 1})
	logger.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "debug", "text")).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestCustomError(t *testing.T) {
	base := errors.New("disk on fire")
	err := Wrap(http.StatusConflict, "not playable", base)

	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Equal(t, "not playable", PublicMessage(err))
	assert.ErrorIs(t, err, base)

	assert.Equal(t, http.StatusInternalServerError, StatusCode(base))
	assert.Equal(t, http.StatusNotFound, StatusCode(New(http.StatusNotFound, "missing")))
}
