package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEAMCHARTS ENGINE TYPES — Distribution Charts
// ============================================================================
// Records in → ChartDataset → BarGeometry | PieGeometry out.
// Nothing here is persisted; every value is rebuilt per request.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and integer measures.
//
// Record{Dimensions["location"]="Lisbon", Measures["wealth"]=7000}
type Record struct {
	Dimensions map[string]string `json:"dimensions"`
	Measures   map[string]int64  `json:"measures"`
}

// ============================================================================
// DIMENSION — What the chart distributes over
// ============================================================================

// Dimension selects the record field a chart is bucketed by.
type Dimension int

const (
	DimensionWealth Dimension = iota
	DimensionSupporters
	DimensionLocation
	DimensionLeague
	DimensionFoundYear
)

// Dimensions lists every dimension in menu order.
var Dimensions = []Dimension{
	DimensionWealth,
	DimensionSupporters,
	DimensionLocation,
	DimensionLeague,
	DimensionFoundYear,
}

// BucketKind is how a dimension is partitioned.
type BucketKind int

const (
	BucketRange BucketKind = iota
	BucketCategory
	BucketYearPeriod
)

// Field keys the record view is expected to expose.
const (
	FieldWealth     = "wealth"
	FieldSupporters = "supporter_count"
	FieldFoundYear  = "found_year"
	FieldLocation   = "location"
	FieldLeague     = "league"
)

func (d Dimension) String() string {
	switch d {
	case DimensionWealth:
		return "wealth"
	case DimensionSupporters:
		return "supporters"
	case DimensionLocation:
		return "location"
	case DimensionLeague:
		return "league"
	case DimensionFoundYear:
		return "found_year"
	}
	return fmt.Sprintf("dimension(%d)", int(d))
}

// Kind returns the bucketing mode for the dimension.
func (d Dimension) Kind() BucketKind {
	switch d {
	case DimensionWealth, DimensionSupporters:
		return BucketRange
	case DimensionLocation, DimensionLeague:
		return BucketCategory
	case DimensionFoundYear:
		return BucketYearPeriod
	}
	return BucketRange
}

// Field returns the record field key read for the dimension.
func (d Dimension) Field() string {
	switch d {
	case DimensionWealth:
		return FieldWealth
	case DimensionSupporters:
		return FieldSupporters
	case DimensionLocation:
		return FieldLocation
	case DimensionLeague:
		return FieldLeague
	case DimensionFoundYear:
		return FieldFoundYear
	}
	return ""
}

// Title is the chart heading for the dimension.
func (d Dimension) Title() string {
	switch d {
	case DimensionWealth:
		return "Team Wealth Distribution"
	case DimensionSupporters:
		return "Supporter Count Distribution"
	case DimensionLocation:
		return "Location Distribution"
	case DimensionLeague:
		return "League Distribution"
	case DimensionFoundYear:
		return "Founding Year Distribution"
	}
	return "Distribution"
}

// BucketHeader is the table column heading for the bucket labels.
func (d Dimension) BucketHeader() string {
	switch d {
	case DimensionWealth:
		return "Wealth Range"
	case DimensionSupporters:
		return "Supporter Range"
	case DimensionLocation:
		return "Location"
	case DimensionLeague:
		return "League"
	case DimensionFoundYear:
		return "Year Range"
	}
	return "Bucket"
}

// ParseDimension accepts the String() form plus a few aliases.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wealth":
		return DimensionWealth, nil
	case "supporters", "supporter_count", "supporter":
		return DimensionSupporters, nil
	case "location", "locations":
		return DimensionLocation, nil
	case "league", "leagues", "league_id":
		return DimensionLeague, nil
	case "found_year", "foundyear", "year", "founded":
		return DimensionFoundYear, nil
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// MarshalText encodes the dimension by name in JSON and YAML.
func (d Dimension) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts anything ParseDimension does.
func (d *Dimension) UnmarshalText(b []byte) error {
	v, err := ParseDimension(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ============================================================================
// STYLE
// ============================================================================

// Style selects the chart geometry produced for a dataset.
type Style int

const (
	StyleBar Style = iota
	StylePie
)

func (s Style) String() string {
	switch s {
	case StyleBar:
		return "bar"
	case StylePie:
		return "pie"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle accepts "bar" or "pie".
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar", "bars":
		return StyleBar, nil
	case "pie":
		return StylePie, nil
	}
	return 0, fmt.Errorf("unknown chart style %q", s)
}

func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ============================================================================
// CHART REQUEST — What the host asks for
// ============================================================================

// ChartRequest is the host's description of the chart to compute.
type ChartRequest struct {
	Dimension      Dimension `json:"dimension"`
	Style          Style     `json:"style"`
	ShowTable      bool      `json:"showTable"`
	ShowPercentage bool      `json:"showPercentage"`
	Canvas         Size      `json:"canvas"`
	Filters        Filters   `json:"filters"`
	ExpandOther    bool      `json:"expandOther,omitempty"` // table lists categories folded into "Other"
}

// Filters define which records to include.
// Dimensions: keys are dimension names, values are allowed values.
// Measures: keys are measure names, values are inclusive ranges.
// OR within a dimension, AND across everything. Empty = all.
type Filters struct {
	Dimensions map[string][]string    `json:"dimensions,omitempty"`
	Measures   map[string]RangeBucket `json:"measures,omitempty"`
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if len(f.Measures) > 0 {
		return false
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// DATASET — Normalized (label, value) sequence
// ============================================================================

// Point is one bucket of a dataset.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartDataset is the ordered result of bucketing.
// Total always equals the sum of Points values.
type ChartDataset struct {
	Points    []Point `json:"points"`
	Total     int     `json:"total"`
	Unmatched int     `json:"unmatched,omitempty"` // range mode: records outside every bucket
	Folded    []Point `json:"folded,omitempty"`    // category mode: categories behind "Other"
}

// Len returns the bucket count.
func (d ChartDataset) Len() int { return len(d.Points) }

// Max returns the largest bucket value, 0 for an empty dataset.
func (d ChartDataset) Max() int {
	m := 0
	for _, p := range d.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Percentage returns value i as a share of the total, 0 when the total is 0.
func (d ChartDataset) Percentage(i int) float64 {
	if d.Total <= 0 || i < 0 || i >= len(d.Points) {
		return 0
	}
	return float64(d.Points[i].Value) / float64(d.Total) * 100
}

// IsEmpty reports whether nothing landed in any bucket.
func (d ChartDataset) IsEmpty() bool { return d.Total <= 0 }

// ============================================================================
// GEOMETRY PRIMITIVES
// ============================================================================

// Pos is a point in container coordinates: origin top-left, y grows downward.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a container extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Align is a horizontal text alignment hint for the renderer.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ============================================================================
// BAR GEOMETRY
// ============================================================================

// BarGeometry is everything a renderer needs to draw a bar chart.
type BarGeometry struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PlotArea   Rect    `json:"plotArea"`
	LabelBand  float64 `json:"labelBand"`
	Spacing    float64 `json:"spacing"`
	DisplayMax int     `json:"displayMax"`
	Ticks      []Tick  `json:"ticks"`
	Bars       []Bar   `json:"bars"`
	Clamped    bool    `json:"clamped,omitempty"` // bar width was raised to the minimum
}

// Tick is one horizontal grid line with its axis value.
type Tick struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Bar is one bucket's rectangle plus annotation hints.
type Bar struct {
	Rect         Rect   `json:"rect"`
	Value        int    `json:"value"`
	Label        string `json:"label"`
	ColorIndex   int    `json:"colorIndex"`
	Color        string `json:"color"`
	ShowValue    bool   `json:"showValue"` // bar is tall enough for a value annotation
	ValueAnchor  Pos    `json:"valueAnchor"`
	LabelAnchor  Pos    `json:"labelAnchor"`
	LabelRotated bool   `json:"labelRotated,omitempty"`
}

// ============================================================================
// PIE GEOMETRY
// ============================================================================

// PieGeometry is everything a renderer needs to draw a pie chart.
// Legend holds exactly the small slices, in dataset order.
type PieGeometry struct {
	Center       Pos           `json:"center"`
	Radius       float64       `json:"radius"`
	HoleRadius   float64       `json:"holeRadius"`
	Total        int           `json:"total"`
	CenterText   string        `json:"centerText"`
	Slices       []Slice       `json:"slices"`
	Legend       []Slice       `json:"legend"`
	LegendLayout *LegendLayout `json:"legendLayout,omitempty"`
}

// Slice is one pie wedge. Angles are radians from the positive x axis,
// growing toward the positive y axis.
type Slice struct {
	Index      int          `json:"index"`
	StartAngle float64      `json:"startAngle"`
	EndAngle   float64      `json:"endAngle"`
	Value      int          `json:"value"`
	Label      string       `json:"label"`
	Percentage float64      `json:"percentage"`
	ColorIndex int          `json:"colorIndex"`
	Color      string       `json:"color"`
	IsSmall    bool         `json:"isSmall"`
	Anchor     *LabelAnchor `json:"anchor,omitempty"` // nil when the label goes to the legend
}

// Span returns the angular width of the slice.
func (s Slice) Span() float64 { return s.EndAngle - s.StartAngle }

// MidAngle returns the angle halfway through the slice.
func (s Slice) MidAngle() float64 { return (s.StartAngle + s.EndAngle) / 2 }

// LabelAnchor places an inline slice label and its leader line.
type LabelAnchor struct {
	LeaderStart Pos    `json:"leaderStart"`
	LeaderEnd   Pos    `json:"leaderEnd"`
	Text        Pos    `json:"text"`
	Align       Align  `json:"align"`
	Content     string `json:"content"`
}

// LegendLayout positions the out-of-band list of small slices.
type LegendLayout struct {
	Title   string        `json:"title"`
	Origin  Pos           `json:"origin"`
	Entries []LegendEntry `json:"entries"`
}

// LegendEntry is one legend row: a colour swatch and its text.
type LegendEntry struct {
	SliceIndex int    `json:"sliceIndex"`
	Swatch     Rect   `json:"swatch"`
	Text       Pos    `json:"text"`
	Content    string `json:"content"`
	Color      string `json:"color"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
// Bar or Pie is populated according to the request style when State is Ready.
type Result struct {
	State   State        `json:"state"`
	Title   string       `json:"title"`
	Reply   string       `json:"reply"`
	Request ChartRequest `json:"request"`
	Dataset ChartDataset `json:"dataset"`

	Bar   *BarGeometry `json:"bar,omitempty"`
	Pie   *PieGeometry `json:"pie,omitempty"`
	Table *TableData   `json:"table,omitempty"`

	Errors []string `json:"errors,omitempty"`
}
