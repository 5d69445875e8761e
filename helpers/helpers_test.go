package helpers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/teamcharts/engine"
	"github.com/spektr-org/teamcharts/teams"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

var teamsCSV = []byte("Team ID,Name,Wealth,Found Year,Location,Supporter Count,Stadium Name,Nickname,League\n" +
	"1,Benfica,\"60,000\",1904,Lisbon,600000,Luz,Eagles,1\n" +
	"2,Porto,55000,1893,Porto,450000,Dragao,Dragons,1\n" +
	"3,Belenenses,800,1919,Lisbon,9000,Restelo,Blues,2\n")

// ============================================================================
// CSV
// ============================================================================

func TestParseTeamsCSV(t *testing.T) {
	list, err := ParseTeamsCSV(teamsCSV)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, teams.Team{
		ID: 1, Name: "Benfica", Wealth: 60000, FoundYear: 1904, Location: "Lisbon",
		SupporterCount: 600000, StadiumName: "Luz", Nickname: "Eagles", LeagueID: 1,
	}, list[0])
	assert.Equal(t, int64(2), list[2].LeagueID)
}

func TestParseTeamsCSVWithoutIDs(t *testing.T) {
	data := []byte("name,wealth,found_year,location,supporter_count,league_id\nA,1,1900,X,10,1\nB,2,1901,Y,20,1\n")

	list, err := ParseTeamsCSV(data)
	require.NoError(t, err)

	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
	assert.Empty(t, list[1].Nickname)
}

func TestParseTeamsCSVErrors(t *testing.T) {
	_, err := ParseTeamsCSV([]byte("name,wealth\nA,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found_year")

	_, err = ParseTeamsCSV([]byte("name,wealth,found_year,location,supporter_count,league_id\nA,rich,1900,X,10,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: column wealth")

	_, err = ParseTeamsCSV(nil)
	assert.Error(t, err)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "supporter_count", toSnakeCase("Supporter Count"))
	assert.Equal(t, "supporter_count", toSnakeCase("supporterCount"))
	assert.Equal(t, "found_year", toSnakeCase("found-year"))
	assert.Equal(t, "league_id", toSnakeCase(" League  ID "))
}

func TestWriteTableCSV(t *testing.T) {
	ds := engine.ChartDataset{Points: []engine.Point{{Label: "a", Value: 3}, {Label: "b", Value: 1}}, Total: 4}
	table := engine.BuildTable(engine.ChartRequest{Dimension: engine.DimensionLocation, ShowPercentage: true}, ds)

	var buf bytes.Buffer
	require.NoError(t, WriteTableCSV(&buf, table))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Location", "Team Count", "Share"},
		{"a", "3", "75.0%"},
		{"b", "1", "25.0%"},
		{"Total", "4", "100.0%"},
	}, rows)
}

// ============================================================================
// EXPORT
// ============================================================================

func TestDatasetParquetRoundTrip(t *testing.T) {
	ds := engine.ChartDataset{Points: []engine.Point{{Label: "0-1000", Value: 1}, {Label: "1001+", Value: 3}}, Total: 4}

	var buf bytes.Buffer
	require.NoError(t, WriteDatasetParquet(&buf, engine.DimensionWealth, ds))

	rows, err := ReadDatasetParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, DatasetRows(engine.DimensionWealth, ds), rows)
	assert.Equal(t, 75.0, rows[1].Percentage)
	assert.Equal(t, "wealth", rows[0].Dimension)
}

func TestTeamsParquetRoundTrip(t *testing.T) {
	list, err := ParseTeamsCSV(teamsCSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTeamsParquet(&buf, list))

	back, err := ReadTeamsParquet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, list, back)
}

func TestWriteYAMLKeepsJSONNames(t *testing.T) {
	v := struct {
		State string   `json:"state"`
		Rows  []string `json:"rows"`
		Count int      `json:"count"`
	}{State: "ready", Rows: []string{"12", "true"}, Count: 3}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, v))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "state: ready\n"), out)
	assert.Contains(t, out, `- "12"`)
	assert.Contains(t, out, `- "true"`)
	assert.Contains(t, out, "count: 3")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}, true))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
