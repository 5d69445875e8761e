package engine

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a ChartDataset
// ============================================================================
// Count column carries the raw bucket value; the optional share column is
// value/total×100 with one decimal.
// ============================================================================

// BuildTable produces the detail table shown under a chart.
// With req.ExpandOther the "Other" row is replaced by the categories it folds.
func BuildTable(req ChartRequest, ds ChartDataset) *TableData {
	columns := []Column{
		{Key: "bucket", Label: req.Dimension.BucketHeader(), Type: "text", Align: "left"},
		{Key: "count", Label: "Team Count", Type: "number", Align: "right"},
	}
	if req.ShowPercentage {
		columns = append(columns, Column{Key: "share", Label: "Share", Type: "percent", Align: "right"})
	}

	points := ds.Points
	if req.ExpandOther && len(ds.Folded) > 0 {
		points = append(append([]Point(nil), ds.Points[:len(ds.Points)-1]...), ds.Folded...)
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		row := []string{p.Label, strconv.Itoa(p.Value)}
		if req.ShowPercentage {
			row = append(row, FormatPercent(share(p.Value, ds.Total)))
		}
		rows = append(rows, row)
	}

	summary := &Summary{
		Label: "Total",
		Values: map[string]string{
			"count": humanize.Comma(int64(ds.Total)),
		},
	}
	if req.ShowPercentage && ds.Total > 0 {
		summary.Values["share"] = FormatPercent(100)
	}
	if ds.Unmatched > 0 {
		summary.Values["unmatched"] = humanize.Comma(int64(ds.Unmatched))
	}

	return &TableData{
		Title:   req.Dimension.Title(),
		Columns: columns,
		Rows:    rows,
		Summary: summary,
	}
}

// FormatPercent renders a percentage with one decimal place: "12.5%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

func share(value, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}
