package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	loader := NewLoaderWith(viper.New())

	cfg, err := loader.Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.Postprocess.IoUThreshold, cfg.Postprocess.IoUThreshold)
	assert.Equal(t, defaults.Server.Port, cfg.Server.Port)
	assert.Equal(t, defaults.Image.Threshold, cfg.Image.Threshold)
}

func TestLoaderWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "percept.yaml")
	content := `
log_level: debug
postprocess:
  iou_threshold: 0.3
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.3, cfg.Postprocess.IoUThreshold, 1e-9)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Unset keys fall back to defaults.
	assert.Equal(t, DefaultConfig().Server.Host, cfg.Server.Host)
}

func TestLoaderWithMissingFile(t *testing.T) {
	loader := NewLoaderWith(viper.New())
	_, err := loader.LoadWithFile("/nonexistent/percept.yaml")
	assert.Error(t, err)
}

func TestLoaderInvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "percept.yaml")
	require.NoError(t, os.WriteFile(path, []byte("postprocess:\n  iou_threshold: 2.0\n"), 0o600))

	loader := NewLoaderWith(viper.New())
	_, err := loader.LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iou_threshold")
}

func TestLoaderEnvironmentOverride(t *testing.T) {
	t.Setenv("PERCEPT_LOG_LEVEL", "warn")

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "percept.yaml")

	require.NoError(t, GenerateDefaultConfigFile(path))

	loader := NewLoaderWith(viper.New())
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
	assert.Contains(t, paths, "/etc/percept")
}
