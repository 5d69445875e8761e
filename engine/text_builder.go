package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// TEXT BUILDER — One-line summaries for the result reply
// ============================================================================

// NoDataReply is shown instead of a chart when nothing can be drawn.
const NoDataReply = "No data available to display."

// BuildSummary describes a dataset in one sentence, naming its largest bucket.
func BuildSummary(d Dimension, ds ChartDataset) string {
	if ds.IsEmpty() {
		return NoDataReply
	}

	top := 0
	for i, p := range ds.Points {
		if p.Value > ds.Points[top].Value {
			top = i
		}
	}

	reply := fmt.Sprintf("%s: %s teams in %d buckets; largest is %s with %s (%s).",
		d.Title(),
		humanize.Comma(int64(ds.Total)),
		ds.Len(),
		ds.Points[top].Label,
		humanize.Comma(int64(ds.Points[top].Value)),
		FormatPercent(ds.Percentage(top)),
	)
	if ds.Unmatched > 0 {
		reply += fmt.Sprintf(" %s outside the configured ranges.", pluralTeams(ds.Unmatched))
	}
	return reply
}

func pluralTeams(n int) string {
	if n == 1 {
		return "1 team"
	}
	return humanize.Comma(int64(n)) + " teams"
}
