// Package terminal renders chart requests as plain or ANSI-colored
// text through a tiered chain of engines. Each tier is attempted in
// full; a failure advances to the next tier from scratch, never to a
// partially drawn chart. The artifact always names the tier that
// actually produced its text.
package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
	"github.com/vvkuznetsov/charts-mcp/internal/theme"
	"github.com/vvkuznetsov/charts-mcp/pkg/logger"
)

// Engine tier names, richest first.
const (
	EngineFull      = "asciigraph"
	EngineStripped  = "asciigraph-plain"
	EngineSparkline = "sparkline"
)

// Engine is one ranked rendering backend in the fallback chain.
type Engine interface {
	Name() string
	SupportsColor() bool
	Render(req *core.TerminalRequest, th *theme.CLITheme, color bool) (string, error)
}

// Renderer tries its engines in order and tags the artifact with the
// winning tier.
type Renderer struct {
	engines []Engine
	rank    map[string]int
	log     logger.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngines replaces the default engine chain, in fallback order.
func WithEngines(engines ...Engine) Option {
	return func(r *Renderer) {
		r.engines = engines
	}
}

// New builds a Renderer with the default chain: full plot, stripped
// plot, sparkline fallback.
func New(log logger.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		log: log,
		engines: []Engine{
			&plotEngine{},
			&plotEngine{stripped: true},
			&sparklineEngine{},
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.rank = make(map[string]int, len(r.engines))
	for i, e := range r.engines {
		r.rank[e.Name()] = i
	}
	return r
}

// Chart renders one terminal chart request, walking the fallback chain.
func (r *Renderer) Chart(req *core.TerminalRequest) (*core.TerminalArtifact, error) {
	th := theme.ResolveCLI(req.Theme)
	color := colorEnabled(req)

	var lastErr error
	for _, engine := range r.engines {
		useColor := color && engine.SupportsColor()

		text, err := safeRender(engine, req, th, useColor)
		if err != nil {
			lastErr = err
			r.log.WithError(err).Debugf("terminal engine %s failed, trying next tier", engine.Name())
			continue
		}

		mode := core.ModeMono
		if useColor {
			mode = core.ModeANSI
		}
		return &core.TerminalArtifact{
			Text:   text,
			Engine: engine.Name(),
			Mode:   mode,
			Theme:  th.Name,
		}, nil
	}

	return nil, fmt.Errorf("%w: all terminal engines failed: %v", core.ErrRenderFailed, lastErr)
}

// Rank returns the fallback position of an engine name; higher means a
// deeper (more degraded) tier. Unknown names rank below every tier.
func (r *Renderer) Rank(engine string) int {
	if rank, ok := r.rank[engine]; ok {
		return rank
	}
	return len(r.engines)
}

// colorEnabled decides whether ANSI color may be emitted. force_mono
// wins over use_color; NO_COLOR and dumb terminals are honored because
// many consuming terminals do not interpret escape sequences.
func colorEnabled(req *core.TerminalRequest) bool {
	if req.ForceMono || !req.UseColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return true
}

// safeRender shields the chain from engines that panic at render time;
// a panic is a tier failure like any other.
func safeRender(engine Engine, req *core.TerminalRequest, th *theme.CLITheme, color bool) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("engine %s panicked: %v", engine.Name(), rec)
		}
	}()
	return engine.Render(req, th, color)
}
