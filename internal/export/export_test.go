package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
	logzerolog "github.com/vvkuznetsov/charts-mcp/pkg/logger/zerolog"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logzerolog.New("disabled", false, false)
	require.NoError(t, err)
	return log
}

func pngArtifact() *core.RenderedArtifact {
	return &core.RenderedArtifact{
		Data:   []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
		Format: core.FormatPNG,
	}
}

func TestExport_InlineOnly(t *testing.T) {
	m := New("", testLogger(t))

	outcome := m.Export(pngArtifact(), core.ExportOptions{
		Format:   core.FormatBase64,
		Filename: "chart",
	})

	require.False(t, outcome.Saved)
	require.Empty(t, outcome.Path)
	require.Equal(t, "image/png", outcome.MIME)
	require.True(t, strings.HasPrefix(outcome.Base64, "data:image/png;base64,"))
}

func TestExport_SaveWithoutOutputDirDegrades(t *testing.T) {
	m := New("", testLogger(t))

	outcome := m.Export(pngArtifact(), core.ExportOptions{
		Format:     core.FormatPNG,
		Filename:   "chart",
		SaveToDisk: true,
	})

	require.False(t, outcome.Saved)
	require.NotEmpty(t, outcome.Base64)
}

func TestExport_SavesToDisk(t *testing.T) {
	dir := t.TempDir()
	m := New(dir, testLogger(t))

	outcome := m.Export(pngArtifact(), core.ExportOptions{
		Format:     core.FormatPNG,
		Filename:   "revenue",
		SaveToDisk: true,
	})

	require.True(t, outcome.Saved)
	require.Equal(t, filepath.Join(dir, "revenue.png"), outcome.Path)

	data, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	require.Equal(t, pngArtifact().Data, data)
}

func TestExport_UnwritableDirDegrades(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "missing", "deeper"), testLogger(t))

	outcome := m.Export(pngArtifact(), core.ExportOptions{
		Format:     core.FormatPNG,
		Filename:   "chart",
		SaveToDisk: true,
	})

	require.False(t, outcome.Saved)
	require.NotEmpty(t, outcome.Base64)
}

func TestExport_TraversalStaysInsideOutputDir(t *testing.T) {
	dir := t.TempDir()
	m := New(dir, testLogger(t))

	outcome := m.Export(pngArtifact(), core.ExportOptions{
		Format:     core.FormatPNG,
		Filename:   "../../etc/passwd",
		SaveToDisk: true,
	})

	require.True(t, outcome.Saved)
	require.Equal(t, dir, filepath.Dir(outcome.Path))
	require.Equal(t, "passwd.png", filepath.Base(outcome.Path))
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in     string
		format core.ImageFormat
		want   string
	}{
		{"revenue", core.FormatPNG, "revenue.png"},
		{"revenue.png", core.FormatPNG, "revenue.png"},
		{"report.svg", core.FormatSVG, "report.svg"},
		{"wrong.png", core.FormatSVG, "wrong.svg"},
		{"", core.FormatPNG, "chart.png"},
		{"...", core.FormatPNG, "chart.png"},
		{"we ird na?me", core.FormatPNG, "weirdname.png"},
		{"../../etc/passwd", core.FormatPNG, "passwd.png"},
		{"dir/sub/file", core.FormatPNG, "file.png"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizeFilename(tc.in, tc.format), "input %q", tc.in)
	}
}

func TestExport_SVGMime(t *testing.T) {
	artifact := &core.RenderedArtifact{Data: []byte("<svg/>"), Format: core.FormatSVG}
	m := New("", testLogger(t))

	outcome := m.Export(artifact, core.ExportOptions{Format: core.FormatSVG, Filename: "v"})
	require.Equal(t, "image/svg+xml", outcome.MIME)
	require.True(t, strings.HasPrefix(outcome.Base64, "data:image/svg+xml;base64,"))
}
