package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFiltersByLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		logFn   func(zerolog.Logger)
		visible bool
	}{
		{name: "info_at_info", level: LevelInfo, logFn: func(l zerolog.Logger) { l.Info().Msg("marker") }, visible: true},
		{name: "debug_at_info", level: LevelInfo, logFn: func(l zerolog.Logger) { l.Debug().Msg("marker") }, visible: false},
		{name: "debug_at_debug", level: LevelDebug, logFn: func(l zerolog.Logger) { l.Debug().Msg("marker") }, visible: true},
		{name: "warn_at_error", level: LevelError, logFn: func(l zerolog.Logger) { l.Warn().Msg("marker") }, visible: false},
		{name: "unknown_defaults_to_info", level: "loud", logFn: func(l zerolog.Logger) { l.Info().Msg("marker") }, visible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, closeFn := Setup(Config{Level: tt.level, Output: buf})
			defer closeFn()

			tt.logFn(logger)
			assert.Equal(t, tt.visible, strings.Contains(buf.String(), "marker"), buf.String())
		})
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skiphire.log")
	logger, closeFn := Setup(Config{Level: LevelInfo, File: path})
	logger.Info().Str("component", "test").Msg("written to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"written to file"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestSetupWithoutOutputDiscards(t *testing.T) {
	logger, closeFn := Setup(Config{Level: LevelDebug})
	defer closeFn()
	logger.Info().Msg("nowhere")
}

func TestNewLoggerAddsComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	_, closeFn := Setup(Config{Level: LevelInfo, Output: buf})
	defer closeFn()

	logger := NewLogger("catalog")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"catalog"`)
}

func TestDefaultLogFileHonoursXDGStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "skiphire", "skiphire.log"), DefaultLogFile())
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		assert.True(t, ValidLevel(level), level)
	}
	assert.False(t, ValidLevel("trace"))
	assert.False(t, ValidLevel(""))
}
