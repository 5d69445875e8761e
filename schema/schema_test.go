package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/teamcharts/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teamcharts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ============================================================================
// LOAD
// ============================================================================

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, ValidateConfig(&cfg))
	assert.Equal(t, []string{"0-1000", "1001-5000", "5001-10000", "10001-50000", "50001+"}, cfg.Ranges.Wealth)
	assert.Equal(t, "500001+", cfg.Ranges.Supporters[4])
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
ranges:
  wealth: ["0-99", "100+"]
  out_of_range_bucket: true
category:
  top_n: 3
  other_label: Rest
pie:
  legend: false
bar:
  spacing: 6
canvas:
  width: 1024
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"0-99", "100+"}, cfg.Ranges.Wealth)
	assert.True(t, cfg.Ranges.OutOfRange)
	assert.Equal(t, 3, cfg.Category.TopN)
	assert.Equal(t, "Rest", cfg.Category.OtherLabel)
	assert.False(t, cfg.Pie.Legend)
	assert.Equal(t, 6.0, cfg.Bar.Spacing)
	assert.Equal(t, engine.DefaultBarLayout().TopMargin, cfg.Bar.TopMargin, "unset keys keep defaults")
	assert.Equal(t, 1024.0, cfg.Canvas.Width)
	assert.Equal(t, engine.DefaultCanvasHeight, cfg.Canvas.Height)
	assert.Equal(t, Default().Ranges.Supporters, cfg.Ranges.Supporters)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "category:\n  top_n: 3\n")
	t.Setenv("TEAMCHARTS_CATEGORY_TOP_N", "7")
	t.Setenv("TEAMCHARTS_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Category.TopN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "years:\n  period: 0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "years.period")
}

// ============================================================================
// VALIDATE
// ============================================================================

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unbounded not last", func(c *Config) { c.Ranges.Wealth = []string{"0+", "10-20"} }, "only the last"},
		{"overlap", func(c *Config) { c.Ranges.Wealth = []string{"0-10", "10-20"} }, "overlaps"},
		{"unparsable", func(c *Config) { c.Ranges.Supporters = []string{"many"} }, "ranges.supporters"},
		{"empty ranges", func(c *Config) { c.Ranges.Wealth = nil }, "cannot be empty"},
		{"top n", func(c *Config) { c.Category.TopN = 0 }, "top_n"},
		{"fallback years", func(c *Config) { c.Years.FallbackMin = 2100 }, "fallback_min"},
		{"threshold", func(c *Config) { c.Pie.SmallSliceRadians = -1 }, "small_slice_radians"},
		{"short palette", func(c *Config) { c.Palette = c.Palette[:5] }, "at least 6"},
		{"bad color", func(c *Config) { c.Palette[2] = "red" }, "palette[2]"},
		{"canvas", func(c *Config) { c.Canvas.Height = 0 }, "canvas"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := ValidateConfig(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// ============================================================================
// OPTIONS + YAML
// ============================================================================

func TestOptionsDriveEngine(t *testing.T) {
	cfg := Default()
	cfg.Ranges.Wealth = []string{"0-99", "100+"}
	cfg.Category.TopN = 1

	opts, err := cfg.Options()
	require.NoError(t, err)

	view := engine.NewSliceView([]engine.Record{
		{Measures: map[string]int64{engine.FieldWealth: 5}, Dimensions: map[string]string{engine.FieldLocation: "a"}},
		{Measures: map[string]int64{engine.FieldWealth: 500}, Dimensions: map[string]string{engine.FieldLocation: "b"}},
	})
	wealth := engine.Aggregate(view, engine.DimensionWealth, opts...)
	assert.Equal(t, []engine.Point{{Label: "0-99", Value: 1}, {Label: "100+", Value: 1}}, wealth.Points)

	locations := engine.Aggregate(view, engine.DimensionLocation, opts...)
	assert.Len(t, locations.Points, 2)
	assert.Equal(t, engine.DefaultOtherLabel, locations.Points[1].Label)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Bar.TightAbove = 12

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "tight_above: 12")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)

	loaded, err := Load(writeConfig(t, string(out)))
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}
