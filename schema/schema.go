package schema

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/teamcharts/engine"
)

// ============================================================================
// SCHEMA — Every tunable of the chart engine, in one place
// ============================================================================
// Built from defaults, a YAML file and TEAMCHARTS_* environment overrides
// (see Load). Options() hands the result to the engine; YAML() dumps the
// effective configuration back out.
// ============================================================================

// Config describes the chart engine configuration.
type Config struct {
	Ranges   RangesConfig     `mapstructure:"ranges" yaml:"ranges"`
	Category CategoryConfig   `mapstructure:"category" yaml:"category"`
	Years    YearsConfig      `mapstructure:"years" yaml:"years"`
	Pie      PieConfig        `mapstructure:"pie" yaml:"pie"`
	Palette  []string         `mapstructure:"palette" yaml:"palette"`
	Bar      engine.BarLayout `mapstructure:"bar" yaml:"bar"`
	Canvas   CanvasConfig     `mapstructure:"canvas" yaml:"canvas"`
	Log      LogConfig        `mapstructure:"log" yaml:"log"`
}

// RangesConfig holds the range tables, written as "min-max" or "min+".
type RangesConfig struct {
	Wealth     []string `mapstructure:"wealth" yaml:"wealth"`
	Supporters []string `mapstructure:"supporters" yaml:"supporters"`
	// OutOfRange adds a bucket for values no range matches.
	OutOfRange bool `mapstructure:"out_of_range_bucket" yaml:"out_of_range_bucket"`
}

// CategoryConfig controls top-N folding.
type CategoryConfig struct {
	TopN       int    `mapstructure:"top_n" yaml:"top_n"`
	OtherLabel string `mapstructure:"other_label" yaml:"other_label"`
}

// YearsConfig controls founding-year periods.
type YearsConfig struct {
	Period      int64 `mapstructure:"period" yaml:"period"`
	FallbackMin int64 `mapstructure:"fallback_min" yaml:"fallback_min"`
	FallbackMax int64 `mapstructure:"fallback_max" yaml:"fallback_max"`
}

// PieConfig controls small-slice handling.
type PieConfig struct {
	SmallSliceRadians float64 `mapstructure:"small_slice_radians" yaml:"small_slice_radians"`
	Legend            bool    `mapstructure:"legend" yaml:"legend"`
}

// CanvasConfig is the default container size.
type CanvasConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// LogConfig selects the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ranges: RangesConfig{
			Wealth:     rangeLabels(engine.DefaultWealthRanges()),
			Supporters: rangeLabels(engine.DefaultSupporterRanges()),
		},
		Category: CategoryConfig{
			TopN:       engine.DefaultTopN,
			OtherLabel: engine.DefaultOtherLabel,
		},
		Years: YearsConfig{
			Period:      engine.DefaultYearPeriod,
			FallbackMin: engine.DefaultFallbackMinYear,
			FallbackMax: engine.DefaultFallbackMaxYear,
		},
		Pie: PieConfig{
			SmallSliceRadians: engine.DefaultSmallSliceRadians,
			Legend:            true,
		},
		Palette: append([]string(nil), engine.DefaultPalette...),
		Bar:     engine.DefaultBarLayout(),
		Canvas: CanvasConfig{
			Width:  engine.DefaultCanvasWidth,
			Height: engine.DefaultCanvasHeight,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func rangeLabels(ranges []engine.RangeBucket) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.Label()
	}
	return out
}

// CanvasSize is the default canvas as an engine size.
func (c Config) CanvasSize() engine.Size {
	return engine.Size{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// Options converts the configuration into engine options.
// Call ValidateConfig first; Options only reports range parse errors.
func (c Config) Options() ([]engine.Option, error) {
	wealth, err := parseRanges(c.Ranges.Wealth)
	if err != nil {
		return nil, errors.Wrap(err, "ranges.wealth")
	}
	supporters, err := parseRanges(c.Ranges.Supporters)
	if err != nil {
		return nil, errors.Wrap(err, "ranges.supporters")
	}

	return []engine.Option{
		engine.WithRanges(engine.DimensionWealth, wealth),
		engine.WithRanges(engine.DimensionSupporters, supporters),
		engine.WithOutOfRangeBucket(c.Ranges.OutOfRange),
		engine.WithTopN(c.Category.TopN),
		engine.WithOtherLabel(c.Category.OtherLabel),
		engine.WithYearPeriod(c.Years.Period),
		engine.WithFallbackYears(c.Years.FallbackMin, c.Years.FallbackMax),
		engine.WithSmallSliceThreshold(c.Pie.SmallSliceRadians),
		engine.WithSmallSliceLegend(c.Pie.Legend),
		engine.WithPalette(engine.Palette(c.Palette)),
		engine.WithBarLayout(c.Bar),
	}, nil
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return out, nil
}

func parseRanges(specs []string) ([]engine.RangeBucket, error) {
	out := make([]engine.RangeBucket, 0, len(specs))
	for _, s := range specs {
		r, err := engine.ParseRange(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
