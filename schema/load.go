package schema

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TEAMCHARTS_CATEGORY_TOP_N.
const EnvPrefix = "TEAMCHARTS"

// Load reads configuration from path, or from teamcharts.yaml in the working
// directory or $HOME/.config/teamcharts when path is empty. A missing
// default file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("teamcharts")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/teamcharts")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults registers every key so environment overrides apply even
// without a config file.
func applyDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("ranges.wealth", d.Ranges.Wealth)
	v.SetDefault("ranges.supporters", d.Ranges.Supporters)
	v.SetDefault("ranges.out_of_range_bucket", d.Ranges.OutOfRange)

	v.SetDefault("category.top_n", d.Category.TopN)
	v.SetDefault("category.other_label", d.Category.OtherLabel)

	v.SetDefault("years.period", d.Years.Period)
	v.SetDefault("years.fallback_min", d.Years.FallbackMin)
	v.SetDefault("years.fallback_max", d.Years.FallbackMax)

	v.SetDefault("pie.small_slice_radians", d.Pie.SmallSliceRadians)
	v.SetDefault("pie.legend", d.Pie.Legend)

	v.SetDefault("palette", d.Palette)

	v.SetDefault("bar.spacing", d.Bar.Spacing)
	v.SetDefault("bar.tight_spacing", d.Bar.TightSpacing)
	v.SetDefault("bar.tight_above", d.Bar.TightAbove)
	v.SetDefault("bar.top_margin", d.Bar.TopMargin)
	v.SetDefault("bar.rotate_above", d.Bar.RotateAbove)
	v.SetDefault("bar.rotated_label_band", d.Bar.RotatedLabelBand)
	v.SetDefault("bar.min_bar_width", d.Bar.MinBarWidth)
	v.SetDefault("bar.min_legible_height", d.Bar.MinLegibleHeight)
	v.SetDefault("bar.value_offset", d.Bar.ValueOffset)
	v.SetDefault("bar.tick_count", d.Bar.TickCount)

	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
