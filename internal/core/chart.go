package core

// ChartType identifies one of the supported chart kinds.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartPie     ChartType = "pie"
	ChartScatter ChartType = "scatter"
	ChartArea    ChartType = "area"
)

// Valid reports whether t is one of the five supported chart kinds.
func (t ChartType) Valid() bool {
	switch t {
	case ChartLine, ChartBar, ChartPie, ChartScatter, ChartArea:
		return true
	}
	return false
}

// Terminal reports whether t has a terminal rendering. Pie has no
// text form.
func (t ChartType) Terminal() bool {
	return t.Valid() && t != ChartPie
}

// ImageFormat is the requested output encoding for image artifacts.
type ImageFormat string

const (
	FormatPNG    ImageFormat = "png"
	FormatSVG    ImageFormat = "svg"
	FormatBase64 ImageFormat = "base64"
)

// Line drawing modes.
const (
	LineModeLines        = "lines"
	LineModeMarkers      = "markers"
	LineModeLinesMarkers = "lines+markers"
)

// Bar composition modes.
const (
	BarModeGroup = "group"
	BarModeStack = "stack"
)

// DataSeries is one named x/y sequence. Labels holds the caller's x
// values stringified when they are categorical; X always holds numeric
// plot positions (the parsed numbers, or 1..n when x is categorical or
// omitted). Immutable once validated.
type DataSeries struct {
	Name     string
	Labels   []string
	X        []float64
	Y        []float64
	NumericX bool
}

// PieDataSeries is one part-to-whole series. Labels and Values are
// paired by index.
type PieDataSeries struct {
	Name   string
	Labels []string
	Values []float64
}

// ChartOptions carries the per-type drawing options. Only the fields
// relevant to the request's chart type are consulted.
type ChartOptions struct {
	LineMode   string  // line: lines | markers | lines+markers
	Smooth     bool    // line: spline-like smoothing
	BarMode    string  // bar: group | stack
	Horizontal bool    // bar: horizontal orientation
	Hole       float64 // pie: 0 = pie, >0 = donut
	ShowLine   bool    // scatter: connect points
	Stack      bool    // area: stacked composition
	Normalize  bool    // area: rescale stacks to 100%
	Opacity    float64 // area: fill opacity 0..1
}

// ThemeRef is a theme selection as given by the caller: a preset name,
// an inline override object, or both.
type ThemeRef struct {
	Preset   string
	Override map[string]any
}

// ChartRequest is a fully validated single-chart request. Pie requests
// carry Pie series; every other type carries Series.
type ChartRequest struct {
	Type    ChartType
	Title   string
	XLabel  string
	YLabel  string
	Series  []DataSeries
	Pie     []PieDataSeries
	Theme   ThemeRef
	Width   int
	Height  int
	Options ChartOptions
}

// PanelSpec is one dashboard cell. Row and Col are 1-based and must
// address a cell inside the declared grid.
type PanelSpec struct {
	Type    ChartType
	Row     int
	Col     int
	Title   string
	XLabel  string
	YLabel  string
	Series  []DataSeries
	Pie     []PieDataSeries
	Options ChartOptions
}

// DashboardRequest is a validated image dashboard request.
type DashboardRequest struct {
	Title  string
	Rows   int
	Cols   int
	Panels []PanelSpec
	Theme  ThemeRef
	Width  int
	Height int
}

// TerminalRequest is a validated terminal chart request.
type TerminalRequest struct {
	Type      ChartType
	Title     string
	XLabel    string
	YLabel    string
	Series    []DataSeries
	Theme     ThemeRef
	Width     int
	Height    int
	UseColor  bool
	ForceMono bool
	RawOutput bool
}

// TerminalPanel is one sequential panel of a terminal dashboard.
type TerminalPanel struct {
	Type   ChartType
	Title  string
	XLabel string
	YLabel string
	Series []DataSeries
}

// TerminalDashboardRequest is a validated terminal dashboard request.
// Panel count is bounded to 2-4 at validation time.
type TerminalDashboardRequest struct {
	Title     string
	Panels    []TerminalPanel
	Theme     ThemeRef
	Width     int
	Height    int
	UseColor  bool
	ForceMono bool
	RawOutput bool
}

// ExportOptions are the caller-controlled export knobs. The destination
// directory is never caller-controlled.
type ExportOptions struct {
	Format     ImageFormat
	Filename   string
	SaveToDisk bool
}

// RenderedArtifact is the output of an image renderer: encoded bytes
// plus the encoding they carry. Ephemeral, lives for one request.
type RenderedArtifact struct {
	Data   []byte
	Format ImageFormat // png or svg; never base64
}

// MIMEType returns the MIME type of the encoded bytes.
func (a *RenderedArtifact) MIMEType() string {
	if a.Format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// TerminalArtifact is the output of the terminal renderer. Engine names
// the fallback tier that actually produced Text, so a caller can see a
// silent downgrade.
type TerminalArtifact struct {
	Text   string
	Engine string
	Mode   string // "ansi" or "mono"
	Theme  string
}

// Terminal render modes.
const (
	ModeANSI = "ansi"
	ModeMono = "mono"
)

// ExportOutcome reports what the export manager did. Saved is false
// whenever no filesystem write occurred, which is not an error.
type ExportOutcome struct {
	Format ImageFormat
	MIME   string
	Path   string
	Saved  bool
	Base64 string
}
