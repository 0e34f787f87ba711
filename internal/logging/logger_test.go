package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"consolebot/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolebot.log")

	logger, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	Get(logger, CategoryBackend).Info("room joined", zap.String("room", "#testroom"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.True(t, strings.Contains(line, `"logger":"backend"`), line)
	assert.True(t, strings.Contains(line, `"room":"#testroom"`), line)
}

func TestNew_RespectsLevel(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty", Format: "json"})
	assert.Error(t, err)
}

func TestForMode_DemoIsSilent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Text.DemoMode = true

	logger, err := ForMode(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestGet_NamesCategory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Get(zap.New(core), CategoryHost).Debug("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "host", entries[0].LoggerName)
}

func TestGet_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { Get(nil, CategoryRender).Info("dropped") })
}
