package engine

import (
	"maps"
	"slices"
	"sort"
)

// ============================================================================
// RECORD VIEW — Read-only access to the host's teams
// ============================================================================
// The engine never copies host data; bucketing reads through RecordView.
//
// Implementations:
//   SliceView      — []Record, for ad-hoc data and tests
//   DomainView[T]  — typed structs read through accessor functions
//   SubView        — filtered subset, indices into a parent view
//
// Views are snapshots by contract: the host must not mutate the backing
// slice while Execute is running.
// ============================================================================

// RecordView provides indexed access to a set of records.
// Out-of-range indices and unknown keys read as "" and 0.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) int64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SLICE VIEW
// ============================================================================

// SliceView wraps []Record. Its key lists are sorted.
type SliceView struct {
	records  []Record
	dimKeys  []string
	measKeys []string
}

// NewSliceView creates a RecordView over records.
func NewSliceView(records []Record) RecordView {
	dims := make(map[string]struct{})
	meas := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Dimensions {
			dims[k] = struct{}{}
		}
		for k := range r.Measures {
			meas[k] = struct{}{}
		}
	}
	return &SliceView{records: records, dimKeys: sortedKeys(dims), measKeys: sortedKeys(meas)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.records) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) int64 {
	if i < 0 || i >= len(v.records) {
		return 0
	}
	return v.records[i].Measures[key]
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView is the subset of a parent view that survived filtering.
type SubView struct {
	parent  RecordView
	indices []int
}

// newSubView selects indices of parent. A SubView of a SubView points
// straight at the root view, so repeated filtering does not stack lookups.
func newSubView(parent RecordView, indices []int) RecordView {
	if sv, ok := parent.(*SubView); ok {
		mapped := make([]int, len(indices))
		for i, idx := range indices {
			mapped[i] = sv.indices[idx]
		}
		return &SubView{parent: sv.parent, indices: mapped}
	}
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) int64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Team]().
//	    Dimension(engine.FieldLocation, func(t Team) string { return t.Location }).
//	    Measure(engine.FieldWealth, func(t Team) int64 { return t.Wealth })
//
//	res, err := engine.Execute(adapter.Bind(teams), req)
//
// ============================================================================

// DomainAdapter maps the fields of T onto dimension and measure keys.
// Registering a key twice replaces its accessor and keeps its position.
type DomainAdapter[T any] struct {
	dimKeys  []string
	measKeys []string
	dims     map[string]func(T) string
	meas     map[string]func(T) int64
}

// NewDomainAdapter creates an empty adapter for T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) int64),
	}
}

// Dimension registers a string accessor under key.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, ok := a.dims[key]; !ok {
		a.dimKeys = append(a.dimKeys, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers an integer accessor under key.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) int64) *DomainAdapter[T] {
	if _, ok := a.meas[key]; !ok {
		a.measKeys = append(a.measKeys, key)
	}
	a.meas[key] = fn
	return a
}

// Bind views data through the accessors registered so far. The view keeps
// a reference to data; later registrations on a do not affect it.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     maps.Clone(a.dims),
		meas:     maps.Clone(a.meas),
		dimKeys:  slices.Clone(a.dimKeys),
		measKeys: slices.Clone(a.measKeys),
	}
}

// DomainView is a RecordView over typed structs.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) int64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.dims[key]
	if !ok || i < 0 || i >= len(v.data) {
		return ""
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) Measure(i int, key string) int64 {
	fn, ok := v.meas[key]
	if !ok || i < 0 || i >= len(v.data) {
		return 0
	}
	return fn(v.data[i])
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
