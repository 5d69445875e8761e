package engine

import (
	"strconv"
)

// ============================================================================
// BAR LAYOUT — ChartDataset → BarGeometry
// ============================================================================
// Container coordinates: origin top-left, y grows downward.
//
//   ┌──────────────────────────────┐  ← TopMargin
//   │      ██                      │
//   │  ██  ██      ██              │  plot area
//   │  ██  ██  ██  ██              │
//   ├──────────────────────────────┤  ← plot bottom
//   │ lbl  lbl lbl lbl             │  label band
//   └──────────────────────────────┘
// ============================================================================

// BarLayout holds the fixed metrics of the bar chart.
type BarLayout struct {
	Spacing          float64 `json:"spacing" mapstructure:"spacing" yaml:"spacing"`
	TightSpacing     float64 `json:"tightSpacing" mapstructure:"tight_spacing" yaml:"tight_spacing"`
	TightAbove       int     `json:"tightAbove" mapstructure:"tight_above" yaml:"tight_above"` // bucket count above which TightSpacing applies
	TopMargin        float64 `json:"topMargin" mapstructure:"top_margin" yaml:"top_margin"`
	RotateAbove      int     `json:"rotateAbove" mapstructure:"rotate_above" yaml:"rotate_above"` // bucket count above which labels rotate
	RotatedLabelBand float64 `json:"rotatedLabelBand" mapstructure:"rotated_label_band" yaml:"rotated_label_band"`
	MinBarWidth      float64 `json:"minBarWidth" mapstructure:"min_bar_width" yaml:"min_bar_width"`
	MinLegibleHeight float64 `json:"minLegibleHeight" mapstructure:"min_legible_height" yaml:"min_legible_height"`
	ValueOffset      float64 `json:"valueOffset" mapstructure:"value_offset" yaml:"value_offset"`
	TickCount        int     `json:"tickCount" mapstructure:"tick_count" yaml:"tick_count"`
}

// DefaultBarLayout returns the standard metrics.
func DefaultBarLayout() BarLayout {
	return BarLayout{
		Spacing:          10,
		TightSpacing:     4,
		TightAbove:       10,
		TopMargin:        10,
		RotateAbove:      8,
		RotatedLabelBand: 60,
		MinBarWidth:      1,
		MinLegibleHeight: 15,
		ValueOffset:      5,
		TickCount:        DefaultTickCount,
	}
}

func (b BarLayout) withDefaults() BarLayout {
	d := DefaultBarLayout()
	if b.Spacing < 0 {
		b.Spacing = d.Spacing
	}
	if b.TightSpacing < 0 {
		b.TightSpacing = d.TightSpacing
	}
	if b.TightAbove <= 0 {
		b.TightAbove = d.TightAbove
	}
	if b.RotateAbove <= 0 {
		b.RotateAbove = d.RotateAbove
	}
	if b.MinBarWidth <= 0 {
		b.MinBarWidth = d.MinBarWidth
	}
	if b.TickCount <= 0 {
		b.TickCount = d.TickCount
	}
	return b
}

// LayoutBars computes bar rectangles, tick lines and label anchors for ds
// inside a width×height container, reserving labelBand at the bottom.
//
// When the container cannot fit the bars, the bar width is clamped to
// MinBarWidth (and a negative plot height to 0), Clamped is set, and the
// usable geometry is returned together with ErrContainerTooSmall.
func LayoutBars(ds ChartDataset, width, height, labelBand float64, opts ...Option) (*BarGeometry, error) {
	return layoutBars(ds, width, height, labelBand, applyOptions(opts))
}

func layoutBars(ds ChartDataset, width, height, labelBand float64, cfg *config) (*BarGeometry, error) {
	m := cfg.Bar
	n := ds.Len()
	if n == 0 {
		return nil, chartErrorf(EmptyDataset, "no buckets to lay out")
	}

	band := labelBand
	if band < 0 {
		band = 0
	}
	rotated := n > m.RotateAbove
	if rotated && band < m.RotatedLabelBand {
		band = m.RotatedLabelBand
	}

	spacing := m.Spacing
	if n > m.TightAbove {
		spacing = m.TightSpacing
	}

	var err error
	geo := &BarGeometry{
		Width:     width,
		Height:    height,
		LabelBand: band,
		Spacing:   spacing,
	}

	barWidth := (width - float64(n+1)*spacing) / float64(n)
	if barWidth <= 0 {
		barWidth = m.MinBarWidth
		geo.Clamped = true
		err = chartErrorf(ContainerTooSmall, "%d bars do not fit in width %.1f", n, width)
	}

	plotHeight := height - band - m.TopMargin
	if plotHeight < 0 {
		plotHeight = 0
		geo.Clamped = true
		err = chartErrorf(ContainerTooSmall, "no plot height left in height %.1f", height)
	}
	plotBottom := m.TopMargin + plotHeight
	geo.PlotArea = Rect{X: 0, Y: m.TopMargin, Width: width, Height: plotHeight}

	maxValue := ds.Max()
	if maxValue <= 0 {
		maxValue = 1
	}
	geo.DisplayMax = NiceMax(maxValue)
	scale := plotHeight / float64(geo.DisplayMax)

	for _, v := range TickValues(geo.DisplayMax, m.TickCount) {
		geo.Ticks = append(geo.Ticks, Tick{
			Value: v,
			Y:     plotBottom - v*scale,
			Label: formatTick(v),
		})
	}

	geo.Bars = make([]Bar, n)
	for i, p := range ds.Points {
		x := spacing + float64(i)*(barWidth+spacing)
		h := float64(p.Value) * scale
		if h < 0 {
			h = 0
		}
		y := plotBottom - h
		geo.Bars[i] = Bar{
			Rect:         Rect{X: x, Y: y, Width: barWidth, Height: h},
			Value:        p.Value,
			Label:        p.Label,
			ColorIndex:   cfg.Palette.Index(i),
			Color:        cfg.Palette.Color(i),
			ShowValue:    h >= m.MinLegibleHeight,
			ValueAnchor:  Pos{X: x + barWidth/2, Y: y - m.ValueOffset},
			LabelAnchor:  Pos{X: x + barWidth/2, Y: plotBottom + band/2},
			LabelRotated: rotated,
		}
	}

	return geo, err
}

func formatTick(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
