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

	"github.com/Taishi66/folio-tui/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.log")

	logger, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)
	logger.Info("hello", zap.String("view", "projects"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "production logs should be JSON, got %q", line)
	assert.Contains(t, line, `"view":"projects"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	logger, err := New(Options{Level: "warn", File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	verbose, err := New(Options{Level: "warn", Verbose: true, File: filepath.Join(t.TempDir(), "y.log")})
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))

	dev, err := New(Options{Dev: true, File: filepath.Join(t.TempDir(), "z.log")})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Env = config.EnvDevelopment
	cfg.Log.File = "/tmp/folio-test.log"

	opts := FromConfig(cfg, true, false)
	assert.True(t, opts.Dev)
	assert.Equal(t, "/tmp/folio-test.log", opts.File)

	opts = FromConfig(cfg, false, true)
	assert.Empty(t, opts.File)
	assert.True(t, opts.Verbose)
}

