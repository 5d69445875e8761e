package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"

	"github.com/spektr-org/teamcharts/engine"
)

// ============================================================================
// TEXT RENDERER — Result → terminal chart
// ============================================================================
// Bars become horizontal runs of block characters scaled to BarWidth;
// pie slices become a coloured swatch list with the small-slice legend
// underneath. Colour is only emitted when w is a colour terminal.
// ============================================================================

// DefaultBarWidth is the length of the longest text bar, in cells.
const DefaultBarWidth = 40

// replyWidth is where the summary reply is wrapped.
const replyWidth = 72

const (
	barRune    = "█"
	swatchRune = "■"
)

// Text writes res as a terminal chart, followed by its table when present.
func Text(w io.Writer, res *engine.Result) error {
	return TextWidth(w, res, DefaultBarWidth)
}

// TextWidth is Text with an explicit maximum bar length.
func TextWidth(w io.Writer, res *engine.Result, barWidth int) error {
	if res == nil {
		return errors.New("render: nil result")
	}
	if barWidth < 1 {
		barWidth = DefaultBarWidth
	}

	re := lipgloss.NewRenderer(w)
	st := newStyles(re)

	var b strings.Builder
	b.WriteString(st.title.Render(res.Title))
	b.WriteString("\n\n")

	switch {
	case res.State != engine.StateReady:
		b.WriteString(st.muted.Render(wordwrap.WrapString(res.Reply, replyWidth)))
		b.WriteString("\n")
	case res.Bar != nil:
		writeBars(&b, st, res, barWidth)
	case res.Pie != nil:
		writePie(&b, st, res.Pie)
	}

	if res.Table != nil {
		b.WriteString("\n")
		writeTable(&b, st, res.Table)
	}
	if res.State == engine.StateReady && res.Reply != "" {
		b.WriteString("\n")
		b.WriteString(st.muted.Render(wordwrap.WrapString(res.Reply, replyWidth)))
		b.WriteString("\n")
	}
	for _, e := range res.Errors {
		b.WriteString(st.warn.Render("! " + e))
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write text chart")
	}
	return nil
}

type styles struct {
	re     *lipgloss.Renderer
	title  lipgloss.Style
	header lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		re:     re,
		title:  re.NewStyle().Bold(true),
		header: re.NewStyle().Bold(true).Underline(true),
		muted:  re.NewStyle().Foreground(lipgloss.Color("241")),
		warn:   re.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func (s styles) color(hex string) lipgloss.Style {
	return s.re.NewStyle().Foreground(lipgloss.Color(hex))
}

// ============================================================================
// BARS
// ============================================================================

func writeBars(b *strings.Builder, st styles, res *engine.Result, barWidth int) {
	g := res.Bar
	labelWidth := 0
	for _, bar := range g.Bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(bar.Label))
	}

	for i, bar := range g.Bars {
		n := 0
		if g.DisplayMax > 0 {
			n = bar.Value * barWidth / g.DisplayMax
		}
		if n == 0 && bar.Value > 0 {
			n = 1
		}

		value := humanize.Comma(int64(bar.Value))
		if res.Request.ShowPercentage {
			value += " (" + engine.FormatPercent(res.Dataset.Percentage(i)) + ")"
		}

		b.WriteString(runewidth.FillRight(bar.Label, labelWidth))
		b.WriteString(" │")
		b.WriteString(st.color(bar.Color).Render(strings.Repeat(barRune, n)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(" └ ")
	b.WriteString(st.muted.Render("scale 0-" + humanize.Comma(int64(g.DisplayMax))))
	b.WriteString("\n")
}

// ============================================================================
// PIE
// ============================================================================

func writePie(b *strings.Builder, st styles, g *engine.PieGeometry) {
	for _, s := range g.Slices {
		if s.Anchor == nil {
			continue
		}
		b.WriteString(st.color(s.Color).Render(swatchRune))
		b.WriteString(" ")
		b.WriteString(s.Anchor.Content)
		b.WriteString("\n")
	}
	if l := g.LegendLayout; l != nil {
		b.WriteString("\n")
		b.WriteString(st.header.Render(l.Title))
		b.WriteString("\n")
		for _, e := range l.Entries {
			b.WriteString("  ")
			b.WriteString(st.color(e.Color).Render(swatchRune))
			b.WriteString(" ")
			b.WriteString(e.Content)
			b.WriteString("\n")
		}
	}
	b.WriteString(st.muted.Render(fmt.Sprintf("Total: %s", humanize.Comma(int64(g.Total)))))
	b.WriteString("\n")
}

// ============================================================================
// TABLE
// ============================================================================

func writeTable(b *strings.Builder, st styles, t *engine.TableData) {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c.Label)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	var summary []string
	if t.Summary != nil {
		summary = make([]string, len(t.Columns))
		summary[0] = t.Summary.Label
		for i, c := range t.Columns[1:] {
			summary[i+1] = t.Summary.Values[c.Key]
		}
		for i, cell := range summary {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	b.WriteString(st.header.Render(formatRow(header, t.Columns, widths)))
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString(formatRow(row, t.Columns, widths))
		b.WriteString("\n")
	}
	if summary != nil {
		b.WriteString(st.title.Render(formatRow(summary, t.Columns, widths)))
		b.WriteString("\n")
	}
}

func formatRow(cells []string, cols []engine.Column, widths []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.Align == "right" {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(parts, "  ")
}
