package theme

import (
	"sort"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// CLITheme is the resolved style descriptor for terminal rendering.
// Colors are named ANSI colors understood by the terminal engines;
// MonoSymbol is the fill glyph used by monochrome bar rows.
type CLITheme struct {
	Name       string
	Colors     []string
	MonoSymbol string
}

// Color returns the named color for series index i, wrapping modulo the
// palette length.
func (t *CLITheme) Color(i int) string {
	return t.Colors[i%len(t.Colors)]
}

// DefaultCLIPreset is the terminal preset used when the caller names none.
const DefaultCLIPreset = "dark_corporate_cli"

var cliPresets = map[string]CLITheme{
	"dark_corporate_cli": {
		Name:       "dark_corporate_cli",
		Colors:     []string{"blue", "green", "yellow", "magenta", "cyan", "white"},
		MonoSymbol: "#",
	},
	"pastel_startup_cli": {
		Name:       "pastel_startup_cli",
		Colors:     []string{"cyan", "magenta", "yellow", "green", "blue", "white"},
		MonoSymbol: "*",
	},
}

var cliDescriptions = map[string]string{
	"dark_corporate_cli": "Terminal palette tuned for dark backgrounds.",
	"pastel_startup_cli": "Softer terminal palette for light backgrounds.",
}

// ResolveCLI maps a theme reference to a terminal theme. Unlike image
// presets, unknown names fall back to the default preset silently; the
// terminal surface always produces output.
func ResolveCLI(ref core.ThemeRef) *CLITheme {
	name := ref.Preset
	if name == "" {
		name = DefaultCLIPreset
	}

	base, ok := cliPresets[name]
	if !ok {
		base = cliPresets[DefaultCLIPreset]
	}

	resolved := base
	if len(ref.Override) > 0 {
		resolved.Colors = append([]string(nil), base.Colors...)
		applyCLIOverride(&resolved, ref.Override)
	}

	return &resolved
}

func applyCLIOverride(t *CLITheme, override map[string]any) {
	if name, ok := override["name"].(string); ok && name != "" {
		t.Name = name
	}
	if raw, ok := override["colors"]; ok {
		if colors, err := toStringSlice(raw); err == nil && len(colors) > 0 {
			t.Colors = colors
		}
	}
	if symbol, ok := override["mono_symbol"].(string); ok && symbol != "" {
		// Bar rows are built one cell at a time; keep a single rune.
		t.MonoSymbol = string([]rune(symbol)[0])
	}
}

// ListCLIPresets returns every terminal preset, sorted by name.
func ListCLIPresets() []Preset {
	names := make([]string, 0, len(cliPresets))
	for name := range cliPresets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Preset, 0, len(names))
	for _, name := range names {
		out = append(out, Preset{
			Name:        name,
			Description: cliDescriptions[name],
			Palette:     cliPresets[name].Colors,
			Default:     name == DefaultCLIPreset,
		})
	}
	return out
}
