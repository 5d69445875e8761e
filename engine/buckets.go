package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ============================================================================
// BUCKETING — Records → ChartDataset
// ============================================================================
// Three modes, chosen by Dimension.Kind():
//   range       first matching RangeBucket wins, misses counted in Unmatched
//   category    exact-value groups, count-descending, top-N + "Other"
//   year period contiguous fixed-width year ranges covering min..max year
// ============================================================================

// RangeBucket is an inclusive [Min, Max] interval. An unbounded bucket has no
// upper limit and is labelled "{min}+".
type RangeBucket struct {
	Min       int64 `json:"min" yaml:"min"`
	Max       int64 `json:"max" yaml:"max"`
	Unbounded bool  `json:"unbounded,omitempty" yaml:"unbounded,omitempty"`
}

// Contains reports whether v falls inside the bucket.
func (b RangeBucket) Contains(v int64) bool {
	if v < b.Min {
		return false
	}
	return b.Unbounded || v <= b.Max
}

// Label renders the bucket as "min-max" or "min+".
func (b RangeBucket) Label() string {
	if b.Unbounded || b.Max == math.MaxInt64 {
		return fmt.Sprintf("%d+", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// ParseRange reads "1000-5000", "50001+" or a single "1900".
func ParseRange(s string) (RangeBucket, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "+") {
		lo, err := strconv.ParseInt(strings.TrimSpace(strings.TrimSuffix(s, "+")), 10, 64)
		if err != nil {
			return RangeBucket{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return RangeBucket{Min: lo, Max: math.MaxInt64, Unbounded: true}, nil
	}
	// Skip a leading sign so "-5-10" splits on the separator, not the sign.
	sep := strings.Index(s[min(1, len(s)):], "-")
	if sep < 0 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return RangeBucket{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return RangeBucket{Min: v, Max: v}, nil
	}
	sep += min(1, len(s))
	lo, err := strconv.ParseInt(strings.TrimSpace(s[:sep]), 10, 64)
	if err != nil {
		return RangeBucket{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(s[sep+1:]), 10, 64)
	if err != nil {
		return RangeBucket{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if hi < lo {
		return RangeBucket{}, fmt.Errorf("invalid range %q: upper bound below lower bound", s)
	}
	return RangeBucket{Min: lo, Max: hi}, nil
}

// Aggregate buckets view by the request dimension.
// An empty view yields a zero-total dataset, never an error.
func Aggregate(view RecordView, d Dimension, opts ...Option) ChartDataset {
	return aggregate(view, d, applyOptions(opts))
}

func aggregate(view RecordView, d Dimension, cfg *config) ChartDataset {
	var ds ChartDataset
	switch d.Kind() {
	case BucketRange:
		ds = aggregateRanges(view, d.Field(), cfg.Ranges[d], cfg)
	case BucketCategory:
		ds = AggregateCategories(view, d.Field(), cfg.TopN, cfg.OtherLabel)
	case BucketYearPeriod:
		ranges := YearPeriodRanges(view, d.Field(), cfg.YearPeriod, cfg.FallbackMinYear, cfg.FallbackMaxYear)
		ds = aggregateRanges(view, d.Field(), ranges, cfg)
	}

	cfg.Logger.Debug("aggregated dataset",
		zap.Stringer("dimension", d),
		zap.Int("records", view.Len()),
		zap.Int("buckets", ds.Len()),
		zap.Int("total", ds.Total),
		zap.Int("unmatched", ds.Unmatched),
	)
	return ds
}

// ============================================================================
// RANGE MODE
// ============================================================================

// AggregateRanges counts each record into the first bucket containing its
// measure value. Records matching no bucket are counted in Unmatched only.
func AggregateRanges(view RecordView, measure string, ranges []RangeBucket, opts ...Option) ChartDataset {
	return aggregateRanges(view, measure, ranges, applyOptions(opts))
}

func aggregateRanges(view RecordView, measure string, ranges []RangeBucket, cfg *config) ChartDataset {
	points := make([]Point, len(ranges))
	for i, r := range ranges {
		points[i].Label = r.Label()
	}

	var total, unmatched int
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		matched := false
		for j, r := range ranges {
			if r.Contains(v) {
				points[j].Value++
				total++
				matched = true
				break
			}
		}
		if !matched {
			unmatched++
		}
	}

	if unmatched > 0 {
		cfg.Logger.Warn("values outside every range bucket",
			zap.String("measure", measure),
			zap.Int("unmatched", unmatched),
			zap.Error(chartErrorf(UnmatchedValue, "%d record(s) outside configured ranges", unmatched)),
		)
		if cfg.OutOfRangeBucket {
			points = append(points, Point{Label: OutOfRangeLabel, Value: unmatched})
			total += unmatched
		}
	}

	return ChartDataset{Points: points, Total: total, Unmatched: unmatched}
}

// ============================================================================
// CATEGORY MODE
// ============================================================================

// AggregateCategories groups by exact dimension value, sorts by count
// descending (ties keep first-seen order) and folds everything past topN
// into one trailing bucket named otherLabel.
func AggregateCategories(view RecordView, dimension string, topN int, otherLabel string) ChartDataset {
	counts := make(map[string]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := counts[key]; !exists {
			order = append(order, key)
		}
		counts[key]++
	}

	points := make([]Point, 0, len(order))
	for _, key := range order {
		points = append(points, Point{Label: key, Value: counts[key]})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })

	ds := ChartDataset{Total: view.Len()}
	if topN > 0 && len(points) > topN {
		// A real category named like the overflow bucket folds into it,
		// so the label stays unique and last.
		var named []Point
		kept := points[:0:0]
		for _, p := range points {
			if p.Label == otherLabel {
				named = append(named, p)
				continue
			}
			kept = append(kept, p)
		}

		cut := min(topN, len(kept))
		ds.Folded = append(append([]Point(nil), kept[cut:]...), named...)
		other := 0
		for _, p := range ds.Folded {
			other += p.Value
		}
		points = append(kept[:cut:cut], Point{Label: otherLabel, Value: other})
	}
	ds.Points = points
	return ds
}

// ============================================================================
// YEAR PERIOD MODE
// ============================================================================

// YearPeriodRanges builds contiguous period-wide buckets starting at the
// period boundary at or below the earliest year and covering the latest one.
// Without records it spans fallbackMin..fallbackMax.
func YearPeriodRanges(view RecordView, measure string, period, fallbackMin, fallbackMax int64) []RangeBucket {
	if period <= 0 {
		period = DefaultYearPeriod
	}

	minYear, maxYear := fallbackMin, fallbackMax
	if view.Len() > 0 {
		minYear, maxYear = math.MaxInt64, math.MinInt64
		for i := 0; i < view.Len(); i++ {
			y := view.Measure(i, measure)
			if y < minYear {
				minYear = y
			}
			if y > maxYear {
				maxYear = y
			}
		}
	}

	start := minYear - floorMod(minYear, period)
	var ranges []RangeBucket
	for cur := start; cur <= maxYear; cur += period {
		ranges = append(ranges, RangeBucket{Min: cur, Max: cur + period - 1})
	}
	return ranges
}

// floorMod keeps negative years aligned to the period grid.
func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
