package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ============================================================================
// PIE LAYOUT — ChartDataset → PieGeometry
// ============================================================================
// Slices run from angle 0 in dataset order. End angles come from the running
// sum so the last slice closes at exactly 2π. Slices narrower than the
// small-slice threshold keep their wedge but lose the inline label; they are
// listed in Legend instead, drawn beside the pie.
// ============================================================================

const (
	leaderInnerRatio = 0.7
	leaderOuterRatio = 1.05
	labelTextOffset  = 5.0
	holeRatio        = 0.3

	legendGap       = 20.0
	legendTitleGap  = 20.0
	legendRowHeight = 15.0
	legendSwatch    = 10.0
	legendTextGap   = 5.0

	// LegendTitle heads the small-slice legend.
	LegendTitle = "Small slices:"
)

// LayoutPie computes slice angles, inline label anchors and the small-slice
// legend for ds, drawn at center with the given radius.
// Angles are taken from the sum of the points, not ds.Total. A dataset whose
// points sum to zero yields ErrEmptyDataset and no geometry.
func LayoutPie(ds ChartDataset, center Pos, radius float64, opts ...Option) (*PieGeometry, error) {
	return layoutPie(ds, center, radius, applyOptions(opts))
}

func layoutPie(ds ChartDataset, center Pos, radius float64, cfg *config) (*PieGeometry, error) {
	sum := 0
	for _, p := range ds.Points {
		sum += p.Value
	}
	if sum != ds.Total {
		cfg.Logger.Warn("dataset total disagrees with its points",
			zap.Int("total", ds.Total),
			zap.Int("sum", sum),
		)
	}
	if sum <= 0 {
		return nil, chartErrorf(EmptyDataset, "pie total is %d", sum)
	}
	if radius < 0 {
		radius = 0
	}

	geo := &PieGeometry{
		Center:     center,
		Radius:     radius,
		HoleRadius: radius * holeRatio,
		Total:      sum,
		CenterText: fmt.Sprintf("Total\n%d", sum),
		Slices:     make([]Slice, 0, ds.Len()),
	}

	total := float64(sum)
	cumulative := 0
	start := 0.0
	for i, p := range ds.Points {
		cumulative += p.Value
		end := 2 * math.Pi * float64(cumulative) / total
		if cumulative == sum {
			end = 2 * math.Pi
		}

		s := Slice{
			Index:      i,
			StartAngle: start,
			EndAngle:   end,
			Value:      p.Value,
			Label:      p.Label,
			Percentage: float64(p.Value) / total * 100,
			ColorIndex: cfg.Palette.Index(i),
			Color:      cfg.Palette.Color(i),
		}
		s.IsSmall = s.Span() < cfg.SmallSliceRadians

		if s.IsSmall && cfg.SmallSliceLegend {
			geo.Legend = append(geo.Legend, s)
		} else {
			s.Anchor = sliceAnchor(s, center, radius)
		}
		geo.Slices = append(geo.Slices, s)
		start = end
	}

	if len(geo.Legend) > 0 {
		geo.LegendLayout = legendLayout(geo.Legend, center, radius)
	}

	cfg.Logger.Debug("pie laid out",
		zap.Int("slices", len(geo.Slices)),
		zap.Int("legend", len(geo.Legend)),
		zap.Int("total", sum),
	)
	return geo, nil
}

// sliceAnchor places the leader line along the mid-angle ray from 0.7r to
// 1.05r, with text nudged outward. Mid-angles in [π, 2π) align right.
func sliceAnchor(s Slice, center Pos, radius float64) *LabelAnchor {
	mid := s.MidAngle()
	cos, sin := math.Cos(mid), math.Sin(mid)

	inner := Pos{X: center.X + radius*leaderInnerRatio*cos, Y: center.Y + radius*leaderInnerRatio*sin}
	outer := Pos{X: center.X + radius*leaderOuterRatio*cos, Y: center.Y + radius*leaderOuterRatio*sin}

	a := &LabelAnchor{
		LeaderStart: inner,
		LeaderEnd:   outer,
		Content:     SliceText(s),
	}
	if mid < math.Pi {
		a.Align = AlignLeft
		a.Text = Pos{X: outer.X + labelTextOffset, Y: outer.Y}
	} else {
		a.Align = AlignRight
		a.Text = Pos{X: outer.X - labelTextOffset, Y: outer.Y}
	}
	return a
}

// SliceText is the label shown for a slice: "label: value (pct%)".
// The percentage is truncated to a whole number.
func SliceText(s Slice) string {
	return fmt.Sprintf("%s: %d (%d%%)", s.Label, s.Value, int(s.Percentage))
}

// legendLayout stacks the small slices to the right of the pie.
func legendLayout(small []Slice, center Pos, radius float64) *LegendLayout {
	x := center.X + radius + legendGap
	y := center.Y - radius

	l := &LegendLayout{
		Title:   LegendTitle,
		Origin:  Pos{X: x, Y: y},
		Entries: make([]LegendEntry, 0, len(small)),
	}
	y += legendTitleGap
	for _, s := range small {
		l.Entries = append(l.Entries, LegendEntry{
			SliceIndex: s.Index,
			Swatch:     Rect{X: x, Y: y, Width: legendSwatch, Height: legendSwatch},
			Text:       Pos{X: x + legendSwatch + legendTextGap, Y: y},
			Content:    SliceText(s),
			Color:      s.Color,
		})
		y += legendRowHeight
	}
	return l
}
