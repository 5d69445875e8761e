package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/teamcharts/engine"
	"github.com/spektr-org/teamcharts/schema"
)

const teamsCSV = "name,wealth,found_year,location,supporter_count,league_id\n" +
	"Benfica,60000,1904,Lisbon,600000,1\n" +
	"Porto,55000,1893,Porto,450000,1\n" +
	"Belenenses,800,1919,Lisbon,9000,2\n"

func useDefaultConfig(t *testing.T) {
	t.Helper()
	def := schema.Default()
	cfg = &def
}

func TestChartRequestFromFlags(t *testing.T) {
	useDefaultConfig(t)
	cmd := newChartCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--data", "x.csv", "--league", "2", "--width", "320"}))

	req, err := chartRequest(cmd, chartFlags{
		dimension: "location", style: "pie", percent: true, league: 2, width: 320, wealth: "1000-5000",
	})
	require.NoError(t, err)

	assert.Equal(t, engine.DimensionLocation, req.Dimension)
	assert.Equal(t, engine.StylePie, req.Style)
	assert.True(t, req.ShowTable)
	assert.Equal(t, engine.Size{Width: 320, Height: engine.DefaultCanvasHeight}, req.Canvas)
	assert.Equal(t, []string{"League 2"}, req.Filters.Dimensions[engine.FieldLeague])
	assert.Equal(t, engine.RangeBucket{Min: 1000, Max: 5000}, req.Filters.Measures[engine.FieldWealth])
}

func TestChartRequestLeagueUnset(t *testing.T) {
	useDefaultConfig(t)
	req, err := chartRequest(newChartCmd(), chartFlags{dimension: "wealth", style: "bar"})
	require.NoError(t, err)
	assert.False(t, req.Filters.HasFilter(engine.FieldLeague))
}

func TestChartRequestRejectsBadInput(t *testing.T) {
	useDefaultConfig(t)
	_, err := chartRequest(newChartCmd(), chartFlags{dimension: "color", style: "bar"})
	assert.Error(t, err)
	_, err = chartRequest(newChartCmd(), chartFlags{dimension: "wealth", style: "donut"})
	assert.Error(t, err)
	_, err = chartRequest(newChartCmd(), chartFlags{dimension: "wealth", style: "bar", years: "soon"})
	assert.Error(t, err)
}

func TestChartWriterFormats(t *testing.T) {
	for _, f := range []string{"json", "pretty", "yaml", "text", "csv", "parquet", "png", "svg"} {
		w, err := chartWriter(f)
		require.NoError(t, err, f)
		assert.NotNil(t, w, f)
	}
	_, err := chartWriter("xlsx")
	assert.ErrorContains(t, err, "xlsx")
}

func TestRunChartWritesCSV(t *testing.T) {
	useDefaultConfig(t)
	dir := t.TempDir()
	data := filepath.Join(dir, "teams.csv")
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(data, []byte(teamsCSV), 0o644))

	err := runChart(&cobra.Command{}, chartFlags{
		data: data, dimension: "location", style: "bar", format: "csv", out: out,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Location,Team Count\nLisbon,2\nPorto,1\nTotal,3\n", string(got))
}

func TestLoadTeamsRequiresPath(t *testing.T) {
	_, err := loadTeams("")
	assert.ErrorContains(t, err, "--data")
}

func TestWriteTeamsText(t *testing.T) {
	useDefaultConfig(t)
	dir := t.TempDir()
	data := filepath.Join(dir, "teams.csv")
	require.NoError(t, os.WriteFile(data, []byte(teamsCSV), 0o644))

	list, err := loadTeams(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTeamsText(&buf, list))
	out := buf.String()
	assert.Contains(t, out, "Benfica (ID: 1)  Lisbon, League 1\n")
	assert.Contains(t, out, "3 teams\n")
	assert.Contains(t, out, "Locations: [Lisbon Porto]")
	assert.Contains(t, out, "Leagues:   [League 1 League 2]")
}
