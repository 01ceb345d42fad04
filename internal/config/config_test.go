package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RENDER_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Empty(t, cfg.OutputDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.LogColored)
	require.False(t, cfg.LogJSON)
	require.Equal(t, 30*time.Second, cfg.RenderTimeout)
}

func TestLoad_RenderTimeout(t *testing.T) {
	t.Setenv("RENDER_TIMEOUT", "1m30s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, cfg.RenderTimeout)
}

func TestLoad_InvalidRenderTimeout(t *testing.T) {
	t.Setenv("RENDER_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "RENDER_TIMEOUT")
}

func TestLoad_OutputDirMadeAbsolute(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "charts-out")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cfg.OutputDir))
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	cfg := &Config{OutputDir: dir}

	require.NoError(t, cfg.EnsureOutputDir())
	require.DirExists(t, dir)

	// No configured directory is a no-op, not an error.
	require.NoError(t, (&Config{}).EnsureOutputDir())
}
