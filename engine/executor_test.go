package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type testTeam struct {
	Location string
	League   string
	Wealth   int64
	Year     int64
}

var testTeams = []testTeam{
	{"Lisbon", "League 1", 500, 1904},
	{"Lisbon", "League 1", 1500, 1906},
	{"Porto", "League 1", 7000, 1893},
	{"Porto", "League 2", 60000, 1922},
	{"Braga", "League 2", 70000, 1921},
}

func testView() RecordView {
	return NewDomainAdapter[testTeam]().
		Dimension(FieldLocation, func(t testTeam) string { return t.Location }).
		Dimension(FieldLeague, func(t testTeam) string { return t.League }).
		Measure(FieldWealth, func(t testTeam) int64 { return t.Wealth }).
		Measure(FieldFoundYear, func(t testTeam) int64 { return t.Year }).
		Bind(testTeams)
}

// ============================================================================
// EXECUTE
// ============================================================================

func TestExecuteBarChart(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{
		Dimension:      DimensionWealth,
		Style:          StyleBar,
		ShowTable:      true,
		ShowPercentage: true,
	})
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, "Team Wealth Distribution", res.Title)
	assert.Equal(t, 5, res.Dataset.Total)
	require.NotNil(t, res.Bar)
	assert.Nil(t, res.Pie)
	assert.Len(t, res.Bar.Bars, 5)
	assert.Equal(t, DefaultCanvasWidth, res.Bar.Width)
	assert.Empty(t, res.Errors)

	require.NotNil(t, res.Table)
	assert.Equal(t, []string{"0-1000", "1", "20.0%"}, res.Table.Rows[0])
	assert.Equal(t, []string{"50001+", "2", "40.0%"}, res.Table.Rows[4])
	assert.Equal(t, "5", res.Table.Summary.Values["count"])
	assert.Contains(t, res.Reply, "largest is 50001+")
}

func TestExecutePieChart(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{
		Dimension: DimensionLocation,
		Style:     StylePie,
		Canvas:    Size{Width: 500, Height: 400},
	})
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	require.NotNil(t, res.Pie)
	assert.Nil(t, res.Bar)
	assert.Nil(t, res.Table)
	assert.Equal(t, Pos{X: 250, Y: 180}, res.Pie.Center)
	assert.Equal(t, 160.0, res.Pie.Radius)
	assert.Equal(t, "Lisbon", res.Pie.Slices[0].Label)
}

func TestExecuteFilters(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{
		Dimension: DimensionLeague,
		Style:     StyleBar,
		Filters: Filters{
			Dimensions: map[string][]string{FieldLocation: {"porto", "BRAGA"}},
			Measures:   map[string]RangeBucket{FieldWealth: {Min: 10000, Unbounded: true}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []Point{{Label: "League 2", Value: 2}}, res.Dataset.Points)
}

func TestExecuteEmptyIsNoData(t *testing.T) {
	res, err := Execute(NewSliceView(nil), ChartRequest{Dimension: DimensionWealth, Style: StylePie})
	require.NoError(t, err)

	assert.Equal(t, StateNoData, res.State)
	assert.Nil(t, res.Bar)
	assert.Nil(t, res.Pie)
	assert.Equal(t, NoDataReply, res.Reply)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "empty dataset")
}

func TestExecuteFilteredToNothing(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{
		Dimension: DimensionLocation,
		Filters:   Filters{Dimensions: map[string][]string{FieldLocation: {"Faro"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, StateNoData, res.State)
	assert.Contains(t, res.Reply, "No teams match")
}

func TestExecuteSmallCanvasStillReady(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{
		Dimension: DimensionWealth,
		Canvas:    Size{Width: 40, Height: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, StateReady, res.State)
	require.NotNil(t, res.Bar)
	assert.True(t, res.Bar.Clamped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "container too small")
}

func TestExecuteRejectsUnknownRequest(t *testing.T) {
	_, err := Execute(testView(), ChartRequest{Dimension: Dimension(42)})
	assert.Error(t, err)

	_, err = Execute(testView(), ChartRequest{Style: Style(9)})
	assert.Error(t, err)

	_, err = Execute(nil, ChartRequest{})
	assert.Error(t, err)
}

func TestResultJSONUsesNames(t *testing.T) {
	res, err := Execute(testView(), ChartRequest{Dimension: DimensionFoundYear, Style: StylePie})
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded struct {
		State   string `json:"state"`
		Request struct {
			Dimension string `json:"dimension"`
			Style     string `json:"style"`
		} `json:"request"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "ready", decoded.State)
	assert.Equal(t, "found_year", decoded.Request.Dimension)
	assert.Equal(t, "pie", decoded.Request.Style)

	var req ChartRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dimension":"supporters","style":"bar"}`), &req))
	assert.Equal(t, DimensionSupporters, req.Dimension)
}

// ============================================================================
// SESSION
// ============================================================================

func TestSessionTransitions(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Result())

	res, err := s.Compute(testView(), ChartRequest{Dimension: DimensionLocation, Style: StyleBar})
	require.NoError(t, err)
	assert.Equal(t, StateReady, s.State())
	assert.Same(t, res, s.Result())

	_, err = s.Compute(NewSliceView(nil), ChartRequest{Dimension: DimensionLocation, Style: StyleBar})
	require.NoError(t, err)
	assert.Equal(t, StateNoData, s.State())
	assert.True(t, s.State().Terminal())

	_, err = s.Compute(testView(), ChartRequest{Dimension: Dimension(42)})
	require.Error(t, err)
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Result())

	_, err = s.Compute(testView(), ChartRequest{Dimension: DimensionWealth})
	require.NoError(t, err)
	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Result())
}

func TestSessionRecomputesOnCanvasChange(t *testing.T) {
	s := NewSession()
	req := ChartRequest{Dimension: DimensionWealth, Style: StyleBar, Canvas: Size{Width: 300, Height: 200}}

	first, err := s.Compute(testView(), req)
	require.NoError(t, err)

	req.Canvas.Width = 600
	second, err := s.Compute(testView(), req)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Greater(t, second.Bar.Bars[0].Rect.Width, first.Bar.Bars[0].Rect.Width)
}

// ============================================================================
// TABLE + SUMMARY
// ============================================================================

func TestBuildTableExpandOther(t *testing.T) {
	ds := ChartDataset{
		Points: []Point{{Label: "a", Value: 5}, {Label: "Other", Value: 3}},
		Folded: []Point{{Label: "b", Value: 2}, {Label: "c", Value: 1}},
		Total:  8,
	}

	folded := BuildTable(ChartRequest{Dimension: DimensionLocation}, ds)
	assert.Len(t, folded.Rows, 2)
	assert.Len(t, folded.Columns, 2)

	expanded := BuildTable(ChartRequest{Dimension: DimensionLocation, ExpandOther: true, ShowPercentage: true}, ds)
	assert.Equal(t, [][]string{
		{"a", "5", "62.5%"},
		{"b", "2", "25.0%"},
		{"c", "1", "12.5%"},
	}, expanded.Rows)
	assert.Equal(t, "Location", expanded.Columns[0].Label)
	assert.Equal(t, "100.0%", expanded.Summary.Values["share"])
	assert.Len(t, ds.Points, 2, "dataset is not modified")
}

func TestBuildSummary(t *testing.T) {
	ds := ChartDataset{
		Points:    []Point{{Label: "x", Value: 1200}, {Label: "y", Value: 3400}},
		Total:     4600,
		Unmatched: 1,
	}

	got := BuildSummary(DimensionSupporters, ds)

	assert.Equal(t, "Supporter Count Distribution: 4,600 teams in 2 buckets; largest is y with 3,400 (73.9%). 1 team outside the configured ranges.", got)
	assert.Equal(t, NoDataReply, BuildSummary(DimensionWealth, ChartDataset{}))
}

func TestPieFrame(t *testing.T) {
	center, radius := PieFrame(Size{Width: 800, Height: 300})

	assert.Equal(t, 120.0, radius)
	assert.Equal(t, Pos{X: 400, Y: 140}, center)
}
