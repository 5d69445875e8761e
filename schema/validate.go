package schema

import (
	"fmt"
	"regexp"

	"github.com/spektr-org/teamcharts/engine"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if err := validateRanges("ranges.wealth", cfg.Ranges.Wealth); err != nil {
		return err
	}
	if err := validateRanges("ranges.supporters", cfg.Ranges.Supporters); err != nil {
		return err
	}

	if cfg.Category.TopN < 1 {
		return fmt.Errorf("category.top_n must be >= 1, got %d", cfg.Category.TopN)
	}
	if cfg.Category.OtherLabel == "" {
		return fmt.Errorf("category.other_label cannot be empty")
	}

	if cfg.Years.Period < 1 {
		return fmt.Errorf("years.period must be >= 1, got %d", cfg.Years.Period)
	}
	if cfg.Years.FallbackMin > cfg.Years.FallbackMax {
		return fmt.Errorf("years.fallback_min (%d) must be <= fallback_max (%d)",
			cfg.Years.FallbackMin, cfg.Years.FallbackMax)
	}

	if cfg.Pie.SmallSliceRadians < 0 {
		return fmt.Errorf("pie.small_slice_radians must be >= 0, got %g", cfg.Pie.SmallSliceRadians)
	}

	if len(cfg.Palette) < engine.MinPaletteSize {
		return fmt.Errorf("palette needs at least %d colors, got %d", engine.MinPaletteSize, len(cfg.Palette))
	}
	for i, c := range cfg.Palette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("palette[%d] must be #rrggbb, got %q", i, c)
		}
	}

	if cfg.Bar.Spacing < 0 || cfg.Bar.TightSpacing < 0 {
		return fmt.Errorf("bar spacing must be >= 0")
	}
	if cfg.Bar.TickCount < 1 {
		return fmt.Errorf("bar.tick_count must be >= 1, got %d", cfg.Bar.TickCount)
	}

	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %gx%g", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be one of: [console json], got %s", cfg.Log.Format)
	}
	return nil
}

// validateRanges requires at least one range, ascending and disjoint, with
// only the last one unbounded.
func validateRanges(key string, specs []string) error {
	if len(specs) == 0 {
		return fmt.Errorf("%s cannot be empty", key)
	}
	ranges, err := parseRanges(specs)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	for i, r := range ranges {
		if r.Unbounded && i != len(ranges)-1 {
			return fmt.Errorf("%s: only the last range may be unbounded, got %q at %d", key, specs[i], i)
		}
		if i > 0 && r.Min <= ranges[i-1].Max {
			return fmt.Errorf("%s: %q overlaps or precedes %q", key, specs[i], specs[i-1])
		}
	}
	return nil
}
