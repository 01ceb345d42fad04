// Package theme holds the image and terminal theme registries and
// resolves caller theme selections into concrete style descriptors.
// Both registries are fixed at process start and safe for concurrent
// reads.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vvkuznetsov/charts-mcp/internal/core"
)

// Theme is a fully resolved style descriptor for image charts. A single
// resolved Theme is shared read-only by every panel of a dashboard so
// that series index N maps to palette color N everywhere.
type Theme struct {
	Name           string
	PaletteHex     []string
	Palette        []drawing.Color
	Paper          drawing.Color
	PlotBackground drawing.Color
	FontFamily     string
	FontColor      drawing.Color
	GridColor      drawing.Color
	TitleFontSize  float64
	LabelFontSize  float64
	TickFontSize   float64
	LineWidth      float64
	MarkerSize     float64
	ShowGrid       bool
	ShowLegend     bool
}

// SeriesColor returns the palette color for series index i, wrapping
// modulo the palette length.
func (t *Theme) SeriesColor(i int) drawing.Color {
	return t.Palette[i%len(t.Palette)]
}

// DefaultPreset is the preset used when the caller names none.
const DefaultPreset = "clean_light"

type presetSpec struct {
	colors        []string
	paper         string
	plot          string
	fontFamily    string
	fontColor     string
	gridColor     string
	titleFontSize float64
	description   string
}

var presetSpecs = map[string]presetSpec{
	"clean_light": {
		colors:        []string{"#2563EB", "#0EA5E9", "#14B8A6", "#22C55E", "#F59E0B", "#EF4444"},
		paper:         "#FFFFFF",
		plot:          "#F8FAFC",
		fontFamily:    "Inter, -apple-system, BlinkMacSystemFont, sans-serif",
		fontColor:     "#0F172A",
		gridColor:     "#CBD5E1",
		titleFontSize: 24,
		description:   "Light general-purpose theme with a neutral grid.",
	},
	"dark_corporate": {
		colors:        []string{"#60A5FA", "#34D399", "#F472B6", "#FBBF24", "#A78BFA", "#22D3EE"},
		paper:         "#050F2A",
		plot:          "#0F1A33",
		fontFamily:    "Inter, -apple-system, BlinkMacSystemFont, sans-serif",
		fontColor:     "#E5E7EB",
		gridColor:     "#334155",
		titleFontSize: 24,
		description:   "Dark corporate theme for dashboards and presentations.",
	},
	"pastel_startup": {
		colors:        []string{"#7DD3FC", "#86EFAC", "#F9A8D4", "#FDE68A", "#C4B5FD", "#67E8F9"},
		paper:         "#FFFDF8",
		plot:          "#FFFBEB",
		fontFamily:    "Inter, -apple-system, BlinkMacSystemFont, sans-serif",
		fontColor:     "#1F2937",
		gridColor:     "#E5E7EB",
		titleFontSize: 24,
		description:   "Soft pastel theme for product reports.",
	},
	"medical_monitor": {
		colors:        []string{"#22C55E", "#EF4444", "#FACC15", "#3B82F6", "#14B8A6", "#A78BFA"},
		paper:         "#F8FAFC",
		plot:          "#FFFFFF",
		fontFamily:    "Inter, -apple-system, BlinkMacSystemFont, sans-serif",
		fontColor:     "#111827",
		gridColor:     "#D1D5DB",
		titleFontSize: 24,
		description:   "High-contrast monitoring theme for health metrics.",
	},
}

var presets = buildPresets()

func buildPresets() map[string]Theme {
	out := make(map[string]Theme, len(presetSpecs))
	for name, spec := range presetSpecs {
		t := Theme{
			Name:           name,
			PaletteHex:     spec.colors,
			Palette:        parsePalette(spec.colors),
			Paper:          parseColor(spec.paper),
			PlotBackground: parseColor(spec.plot),
			FontFamily:     spec.fontFamily,
			FontColor:      parseColor(spec.fontColor),
			GridColor:      parseColor(spec.gridColor),
			TitleFontSize:  spec.titleFontSize,
			LabelFontSize:  14,
			TickFontSize:   12,
			LineWidth:      2,
			MarkerSize:     8,
			ShowGrid:       true,
			ShowLegend:     true,
		}
		out[name] = t
	}
	return out
}

func parsePalette(hexes []string) []drawing.Color {
	colors := make([]drawing.Color, len(hexes))
	for i, h := range hexes {
		colors[i] = parseColor(h)
	}
	return colors
}

func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// Resolve maps a theme reference to a concrete Theme. Unknown preset
// names fail; inline override fields are merged over the preset
// field-by-field, omitted fields inherit.
func Resolve(ref core.ThemeRef) (*Theme, error) {
	name := ref.Preset
	if name == "" {
		name = DefaultPreset
	}

	base, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			core.ErrThemeNotFound, name, strings.Join(PresetNames(), ", "))
	}

	resolved := base
	if len(ref.Override) > 0 {
		// Never mutate the registry entry's slices.
		resolved.PaletteHex = append([]string(nil), base.PaletteHex...)
		resolved.Palette = append([]drawing.Color(nil), base.Palette...)
		if err := applyOverride(&resolved, ref.Override); err != nil {
			return nil, err
		}
	}

	return &resolved, nil
}

func applyOverride(t *Theme, override map[string]any) error {
	for key, value := range override {
		switch key {
		case "colors":
			hexes, err := toStringSlice(value)
			if err != nil || len(hexes) == 0 {
				return core.NewFieldError("theme.colors", "must be a non-empty array of hex colors")
			}
			t.PaletteHex = hexes
			t.Palette = parsePalette(hexes)
		case "paper_bgcolor", "background":
			s, ok := value.(string)
			if !ok {
				return core.NewFieldError("theme."+key, "must be a hex color string")
			}
			t.Paper = parseColor(s)
		case "plot_background":
			s, ok := value.(string)
			if !ok {
				return core.NewFieldError("theme.plot_background", "must be a hex color string")
			}
			t.PlotBackground = parseColor(s)
		case "font_family":
			s, ok := value.(string)
			if !ok {
				return core.NewFieldError("theme.font_family", "must be a string")
			}
			t.FontFamily = s
		case "font_color":
			s, ok := value.(string)
			if !ok {
				return core.NewFieldError("theme.font_color", "must be a hex color string")
			}
			t.FontColor = parseColor(s)
		case "grid_color":
			s, ok := value.(string)
			if !ok {
				return core.NewFieldError("theme.grid_color", "must be a hex color string")
			}
			t.GridColor = parseColor(s)
		case "show_grid":
			b, ok := value.(bool)
			if !ok {
				return core.NewFieldError("theme.show_grid", "must be a boolean")
			}
			t.ShowGrid = b
		case "show_legend":
			b, ok := value.(bool)
			if !ok {
				return core.NewFieldError("theme.show_legend", "must be a boolean")
			}
			t.ShowLegend = b
		case "title_font_size":
			f, ok := toFloat(value)
			if !ok {
				return core.NewFieldError("theme.title_font_size", "must be a number")
			}
			t.TitleFontSize = f
		case "label_font_size":
			f, ok := toFloat(value)
			if !ok {
				return core.NewFieldError("theme.label_font_size", "must be a number")
			}
			t.LabelFontSize = f
		case "tick_font_size":
			f, ok := toFloat(value)
			if !ok {
				return core.NewFieldError("theme.tick_font_size", "must be a number")
			}
			t.TickFontSize = f
		case "line_width":
			f, ok := toFloat(value)
			if !ok {
				return core.NewFieldError("theme.line_width", "must be a number")
			}
			t.LineWidth = f
		case "marker_size":
			f, ok := toFloat(value)
			if !ok {
				return core.NewFieldError("theme.marker_size", "must be a number")
			}
			t.MarkerSize = f
		default:
			return core.NewFieldError("theme."+key, "unknown theme field")
		}
	}
	return nil
}

func toStringSlice(value any) ([]string, error) {
	raw, ok := value.([]any)
	if !ok {
		if ss, ok := value.([]string); ok {
			return ss, nil
		}
		return nil, fmt.Errorf("not an array")
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out[i] = s
	}
	return out, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Preset describes one named theme for the listing operation.
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Palette     []string `json:"colors"`
	Default     bool     `json:"default"`
}

// PresetNames returns the image preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListPresets returns every image preset, sorted by name.
func ListPresets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range PresetNames() {
		out = append(out, Preset{
			Name:        name,
			Description: presetSpecs[name].description,
			Palette:     presets[name].PaletteHex,
			Default:     name == DefaultPreset,
		})
	}
	return out
}
