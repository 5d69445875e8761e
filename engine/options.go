package engine

import (
	"math"

	"go.uber.org/zap"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute() and the layout engines
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Ranges            map[Dimension][]RangeBucket
	TopN              int
	OtherLabel        string
	YearPeriod        int64
	FallbackMinYear   int64
	FallbackMaxYear   int64
	OutOfRangeBucket  bool
	SmallSliceRadians float64
	SmallSliceLegend  bool
	Palette           Palette
	Bar               BarLayout
	Logger            *zap.Logger
}

// Defaults used when no option overrides them.
const (
	DefaultTopN              = 10
	DefaultOtherLabel        = "Other"
	DefaultYearPeriod        = 20
	DefaultFallbackMinYear   = 1800
	DefaultFallbackMaxYear   = 2023
	DefaultSmallSliceRadians = 0.05
	DefaultTickCount         = 5
	OutOfRangeLabel          = "Out of range"
)

// DefaultWealthRanges are the five wealth buckets, last one unbounded.
func DefaultWealthRanges() []RangeBucket {
	return []RangeBucket{
		{Min: 0, Max: 1000},
		{Min: 1001, Max: 5000},
		{Min: 5001, Max: 10000},
		{Min: 10001, Max: 50000},
		{Min: 50001, Max: math.MaxInt64, Unbounded: true},
	}
}

// DefaultSupporterRanges are the five supporter-count buckets, last one unbounded.
func DefaultSupporterRanges() []RangeBucket {
	return []RangeBucket{
		{Min: 0, Max: 10000},
		{Min: 10001, Max: 50000},
		{Min: 50001, Max: 100000},
		{Min: 100001, Max: 500000},
		{Min: 500001, Max: math.MaxInt64, Unbounded: true},
	}
}

// WithRanges replaces the range table of a range-bucketed dimension.
func WithRanges(d Dimension, ranges []RangeBucket) Option {
	return func(c *config) {
		c.Ranges[d] = append([]RangeBucket(nil), ranges...)
	}
}

// WithTopN sets the categorical cap before folding into "Other".
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithOtherLabel renames the synthetic overflow bucket.
func WithOtherLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.OtherLabel = label
		}
	}
}

// WithYearPeriod sets the width of founding-year buckets.
func WithYearPeriod(period int64) Option {
	return func(c *config) {
		if period > 0 {
			c.YearPeriod = period
		}
	}
}

// WithFallbackYears sets the year span used when there are no records.
func WithFallbackYears(minYear, maxYear int64) Option {
	return func(c *config) {
		if minYear <= maxYear {
			c.FallbackMinYear = minYear
			c.FallbackMaxYear = maxYear
		}
	}
}

// WithOutOfRangeBucket appends an "Out of range" bucket holding values that
// matched no configured range, instead of only counting them in Unmatched.
func WithOutOfRangeBucket(enabled bool) Option {
	return func(c *config) {
		c.OutOfRangeBucket = enabled
	}
}

// WithSmallSliceThreshold sets the angular span below which a pie slice is small.
func WithSmallSliceThreshold(radians float64) Option {
	return func(c *config) {
		if radians >= 0 {
			c.SmallSliceRadians = radians
		}
	}
}

// WithSmallSliceLegend toggles routing small slices to the legend.
// When off, every slice is labelled inline.
func WithSmallSliceLegend(enabled bool) Option {
	return func(c *config) {
		c.SmallSliceLegend = enabled
	}
}

// WithPalette sets the colour cycle. Palettes shorter than MinPaletteSize are ignored.
func WithPalette(p Palette) Option {
	return func(c *config) {
		if len(p) >= MinPaletteSize {
			c.Palette = append(Palette(nil), p...)
		}
	}
}

// WithBarLayout overrides the bar chart metrics.
func WithBarLayout(b BarLayout) Option {
	return func(c *config) {
		c.Bar = b.withDefaults()
	}
}

// WithLogger routes engine logging to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Ranges: map[Dimension][]RangeBucket{
			DimensionWealth:     DefaultWealthRanges(),
			DimensionSupporters: DefaultSupporterRanges(),
		},
		TopN:              DefaultTopN,
		OtherLabel:        DefaultOtherLabel,
		YearPeriod:        DefaultYearPeriod,
		FallbackMinYear:   DefaultFallbackMinYear,
		FallbackMaxYear:   DefaultFallbackMaxYear,
		SmallSliceRadians: DefaultSmallSliceRadians,
		SmallSliceLegend:  true,
		Palette:           DefaultPalette,
		Bar:               DefaultBarLayout(),
		Logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
