// Package render draws engine results for people: raster and vector images
// through go-chart, and styled text for terminals.
package render

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/teamcharts/engine"
)

// ============================================================================
// IMAGE RENDERER — BarGeometry / PieGeometry → PNG or SVG
// ============================================================================
// The engine decides every position; this file only translates geometry
// into renderer calls. A title band is added above the canvas, so all
// geometry is shifted down by titleBand.
// ============================================================================

const (
	titleBand     = 30.0
	titleFontSize = 14.0
	labelFontSize = 10.0
	charWidth     = 7.0 // approximate advance at labelFontSize, for sizing only
	imageMargin   = 10.0
)

var (
	background = drawing.ColorWhite
	foreground = drawing.ColorFromHex("333333")
	gridColor  = drawing.ColorFromHex("DDDDDD")
)

// PNG draws res as a PNG image.
func PNG(w io.Writer, res *engine.Result) error {
	return Image(w, res, chart.PNG)
}

// SVG draws res as an SVG document.
func SVG(w io.Writer, res *engine.Result) error {
	return Image(w, res, chart.SVG)
}

// Image draws res with any go-chart renderer provider.
func Image(w io.Writer, res *engine.Result, provider chart.RendererProvider) error {
	if res == nil {
		return errors.New("render: nil result")
	}
	width, height := imageSize(res)

	r, err := provider(width, height)
	if err != nil {
		return errors.Wrap(err, "failed to create renderer")
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return errors.Wrap(err, "failed to load font")
	}
	r.SetFont(font)

	fillRect(r, engine.Rect{Width: float64(width), Height: float64(height)}, background)
	drawTitle(r, res.Title, float64(width))

	switch {
	case res.State != engine.StateReady:
		drawCentered(r, res.Reply, float64(width)/2, float64(height)/2)
	case res.Bar != nil:
		drawBars(r, res.Bar)
	case res.Pie != nil:
		drawPie(r, res.Pie)
	}

	if err := r.Save(w); err != nil {
		return errors.Wrap(err, "failed to encode image")
	}
	return nil
}

// imageSize is the canvas plus the title band, widened to fit the small-slice
// legend when there is one.
func imageSize(res *engine.Result) (int, int) {
	canvas := res.Request.CanvasSize()
	width := canvas.Width
	if res.Pie != nil && res.Pie.LegendLayout != nil {
		l := res.Pie.LegendLayout
		widest := runewidth.StringWidth(l.Title)
		for _, e := range l.Entries {
			widest = max(widest, runewidth.StringWidth(e.Content)+3)
		}
		width = math.Max(width, l.Origin.X+float64(widest)*charWidth+imageMargin)
	}
	return int(math.Ceil(width)), int(math.Ceil(canvas.Height + titleBand))
}

func drawTitle(r chart.Renderer, title string, width float64) {
	r.SetFontSize(titleFontSize)
	r.SetFontColor(foreground)
	drawAligned(r, title, width/2, titleBand-imageMargin, engine.AlignCenter)
	r.SetFontSize(labelFontSize)
}

// ============================================================================
// BARS
// ============================================================================

func drawBars(r chart.Renderer, g *engine.BarGeometry) {
	r.SetFontSize(labelFontSize)
	r.SetFontColor(foreground)

	for _, t := range g.Ticks {
		y := t.Y + titleBand
		r.SetStrokeColor(gridColor)
		r.SetStrokeWidth(1)
		r.MoveTo(px(g.PlotArea.X), px(y))
		r.LineTo(px(g.PlotArea.X+g.PlotArea.Width), px(y))
		r.Stroke()
		drawAligned(r, t.Label, g.PlotArea.X+2, y-2, engine.AlignLeft)
	}

	for _, b := range g.Bars {
		rect := b.Rect
		rect.Y += titleBand
		fillRect(r, rect, hexColor(b.Color))

		if b.ShowValue {
			drawAligned(r, strconv.Itoa(b.Value), b.ValueAnchor.X, b.ValueAnchor.Y+titleBand, engine.AlignCenter)
		}
		label := b.LabelAnchor
		label.Y += titleBand
		if b.LabelRotated {
			r.SetTextRotation(-math.Pi / 4)
			r.Text(b.Label, px(label.X), px(label.Y))
			r.ClearTextRotation()
			continue
		}
		drawAligned(r, b.Label, label.X, label.Y, engine.AlignCenter)
	}
}

// ============================================================================
// PIE
// ============================================================================

func drawPie(r chart.Renderer, g *engine.PieGeometry) {
	cx, cy := g.Center.X, g.Center.Y+titleBand

	for _, s := range g.Slices {
		if s.Span() <= 0 {
			continue
		}
		r.SetFillColor(hexColor(s.Color))
		r.SetStrokeColor(background)
		r.SetStrokeWidth(1)
		r.MoveTo(px(cx), px(cy))
		r.ArcTo(px(cx), px(cy), g.Radius, g.Radius, s.StartAngle, s.Span())
		r.LineTo(px(cx), px(cy))
		r.Close()
		r.FillStroke()
	}

	if g.HoleRadius > 0 {
		r.SetFillColor(background)
		r.SetStrokeColor(background)
		r.MoveTo(px(cx+g.HoleRadius), px(cy))
		r.ArcTo(px(cx), px(cy), g.HoleRadius, g.HoleRadius, 0, 2*math.Pi)
		r.Close()
		r.FillStroke()
	}
	r.SetFontColor(foreground)
	r.SetFontSize(labelFontSize)
	drawCentered(r, g.CenterText, cx, cy)

	for _, s := range g.Slices {
		a := s.Anchor
		if a == nil {
			continue
		}
		r.SetStrokeColor(foreground)
		r.SetStrokeWidth(1)
		r.MoveTo(px(a.LeaderStart.X), px(a.LeaderStart.Y+titleBand))
		r.LineTo(px(a.LeaderEnd.X), px(a.LeaderEnd.Y+titleBand))
		r.Stroke()
		drawAligned(r, a.Content, a.Text.X, a.Text.Y+titleBand, a.Align)
	}

	if l := g.LegendLayout; l != nil {
		drawAligned(r, l.Title, l.Origin.X, l.Origin.Y+titleBand+labelFontSize, engine.AlignLeft)
		for _, e := range l.Entries {
			sw := e.Swatch
			sw.Y += titleBand
			fillRect(r, sw, hexColor(e.Color))
			drawAligned(r, e.Content, e.Text.X, e.Text.Y+titleBand+labelFontSize, engine.AlignLeft)
		}
	}
}

// ============================================================================
// PRIMITIVES
// ============================================================================

func fillRect(r chart.Renderer, rect engine.Rect, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(px(rect.X), px(rect.Y))
	r.LineTo(px(rect.X+rect.Width), px(rect.Y))
	r.LineTo(px(rect.X+rect.Width), px(rect.Y+rect.Height))
	r.LineTo(px(rect.X), px(rect.Y+rect.Height))
	r.Close()
	r.Fill()
}

// drawAligned writes one line of text with its baseline at y.
func drawAligned(r chart.Renderer, text string, x, y float64, align engine.Align) {
	if text == "" {
		return
	}
	switch align {
	case engine.AlignCenter:
		x -= float64(r.MeasureText(text).Width()) / 2
	case engine.AlignRight:
		x -= float64(r.MeasureText(text).Width())
	}
	r.Text(text, px(x), px(y))
}

// drawCentered writes multi-line text centered on (x, y).
func drawCentered(r chart.Renderer, text string, x, y float64) {
	lines := strings.Split(text, "\n")
	lineHeight := labelFontSize * 1.4
	top := y - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		drawAligned(r, line, x, top+float64(i)*lineHeight, engine.AlignCenter)
	}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func px(v float64) int { return int(math.Round(v)) }
