// Package export turns rendered artifacts into caller-facing outputs.
// The caller picks a format and a bare filename; the destination
// directory comes from server configuration only, so a request can
// never steer a write outside it.
package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
)

// Manager applies the export policy for every rendered artifact.
type Manager struct {
	outputDir string
	log       logger.Logger
}

// New creates a Manager writing into outputDir. An empty outputDir
// disables disk writes entirely.
func New(outputDir string, log logger.Logger) *Manager {
	return &Manager{outputDir: outputDir, log: log}
}

// Export produces the outcome for one artifact: always an inline
// base64 data URI, plus a disk file when requested and permitted. A
// failed disk write degrades to the inline form instead of failing the
// request.
func (m *Manager) Export(artifact *core.RenderedArtifact, opts core.ExportOptions) *core.ExportOutcome {
	outcome := &core.ExportOutcome{
		Format: opts.Format,
		MIME:   artifact.MIMEType(),
		Base64: dataURI(artifact),
	}

	if !opts.SaveToDisk {
		return outcome
	}
	if m.outputDir == "" {
		m.log.Warn("save_to_disk requested but no output directory is configured, returning inline image only")
		return outcome
	}

	name := sanitizeFilename(opts.Filename, artifact.Format)
	path := filepath.Join(m.outputDir, name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		m.log.WithError(err).Warnf("could not write %s, returning inline image only", path)
		return outcome
	}

	outcome.Saved = true
	outcome.Path = path
	m.log.WithField("path", path).Debug("artifact saved")
	return outcome
}

func dataURI(artifact *core.RenderedArtifact) string {
	return fmt.Sprintf("data:%s;base64,%s",
		artifact.MIMEType(), base64.StdEncoding.EncodeToString(artifact.Data))
}

// sanitizeFilename reduces a caller-supplied name to a safe basename
// and forces the extension to match the encoded format.
func sanitizeFilename(name string, format core.ImageFormat) string {
	name = filepath.Base(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}

	clean := strings.Trim(b.String(), ".")
	clean = strings.TrimSuffix(clean, ".png")
	clean = strings.TrimSuffix(clean, ".svg")
	if clean == "" {
		clean = "chart"
	}

	ext := ".png"
	if format == core.FormatSVG {
		ext = ".svg"
	}
	return clean + ext
}
