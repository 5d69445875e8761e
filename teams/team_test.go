package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/teamcharts/engine"
)

var sample = []Team{
	{ID: 1, Name: "Benfica", Wealth: 60000, FoundYear: 1904, Location: "Lisbon", SupporterCount: 600000, StadiumName: "Luz", Nickname: "Eagles", LeagueID: 1},
	{ID: 2, Name: "Porto", Wealth: 55000, FoundYear: 1893, Location: "Porto", SupporterCount: 450000, StadiumName: "Dragao", Nickname: "Dragons", LeagueID: 1},
	{ID: 3, Name: "Braga", Wealth: 9000, FoundYear: 1921, Location: "Braga", SupporterCount: 40000, StadiumName: "Municipal", Nickname: "Warriors", LeagueID: 1},
	{ID: 4, Name: "Belenenses", Wealth: 800, FoundYear: 1919, Location: "Lisbon", SupporterCount: 9000, StadiumName: "Restelo", Nickname: "Blues", LeagueID: 2},
}

func TestViewExposesEngineFields(t *testing.T) {
	v := View(sample)

	require.Equal(t, 4, v.Len())
	assert.Equal(t, "Lisbon", v.Dimension(0, engine.FieldLocation))
	assert.Equal(t, "League 2", v.Dimension(3, engine.FieldLeague))
	assert.Equal(t, int64(450000), v.Measure(1, engine.FieldSupporters))
	assert.Equal(t, int64(1921), v.Measure(2, engine.FieldFoundYear))
	assert.ElementsMatch(t, []string{engine.FieldLocation, engine.FieldLeague, "name"}, v.DimensionKeys())
}

func TestExecuteOverTeams(t *testing.T) {
	res, err := engine.Execute(View(sample), engine.ChartRequest{
		Dimension: engine.DimensionLeague,
		Style:     engine.StylePie,
	})
	require.NoError(t, err)

	assert.Equal(t, []engine.Point{
		{Label: "League 1", Value: 3},
		{Label: "League 2", Value: 1},
	}, res.Dataset.Points)
}

func TestSearch(t *testing.T) {
	assert.Len(t, Search(sample, "", SearchAll), 4)
	assert.Equal(t, []Team{sample[0], sample[3]}, Search(sample, "LIS", SearchLocation))
	assert.Equal(t, []Team{sample[3]}, Search(sample, "2", SearchLeague))
	assert.Equal(t, []Team{sample[1]}, Search(sample, "dragons", SearchAll))
	assert.Empty(t, Search(sample, "eagles", SearchName))
}

func TestQueryFilters(t *testing.T) {
	league := int64(1)
	f, err := Query{Location: "lisbon", LeagueID: &league, Wealth: "1000-100000", Years: "1900+"}.Filters()
	require.NoError(t, err)

	res, err := engine.Execute(View(sample), engine.ChartRequest{Dimension: engine.DimensionLocation, Filters: f})
	require.NoError(t, err)
	assert.Equal(t, []engine.Point{{Label: "Lisbon", Value: 1}}, res.Dataset.Points)

	empty, err := Query{}.Filters()
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = Query{Wealth: "lots"}.Filters()
	assert.Error(t, err)
}

func TestUniqueValues(t *testing.T) {
	assert.Equal(t, []string{"Braga", "Lisbon", "Porto"}, UniqueLocations(sample))
	assert.Equal(t, []int64{1, 2}, UniqueLeagues(sample))
}

func TestParseSearchField(t *testing.T) {
	f, err := ParseSearchField("Location")
	require.NoError(t, err)
	assert.Equal(t, SearchLocation, f)

	_, err = ParseSearchField("stadium")
	assert.Error(t, err)
}

func TestTeamString(t *testing.T) {
	assert.Equal(t, "Benfica (ID: 1)", sample[0].String())
}
