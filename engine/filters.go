package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Team selection ahead of bucketing
// ============================================================================
// One pass over the view; each record is tested against every constraint.
// The result is a SubView, so no team data is copied.
// ============================================================================

// ApplyFilters returns the records that satisfy every filter.
// Dimension values compare case-insensitively and measure ranges are
// inclusive. An empty Filters returns view itself.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	allowed := make(map[string]map[string]struct{}, len(filters.Dimensions))
	for dim, values := range filters.Dimensions {
		if !filters.HasFilter(dim) {
			continue
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[strings.ToLower(v)] = struct{}{}
		}
		allowed[dim] = set
	}

	var keep []int
	for i := 0; i < view.Len(); i++ {
		if keepRecord(view, i, allowed, filters.Measures) {
			keep = append(keep, i)
		}
	}
	return newSubView(view, keep)
}

func keepRecord(view RecordView, i int, allowed map[string]map[string]struct{}, ranges map[string]RangeBucket) bool {
	for dim, set := range allowed {
		if _, ok := set[strings.ToLower(view.Dimension(i, dim))]; !ok {
			return false
		}
	}
	for measure, r := range ranges {
		if !r.Contains(view.Measure(i, measure)) {
			return false
		}
	}
	return true
}
