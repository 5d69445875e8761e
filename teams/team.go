// Package teams binds the team record to the chart engine.
package teams

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spektr-org/teamcharts/engine"
)

// Team is one row of the team table.
type Team struct {
	ID             int64  `json:"id" csv:"id" parquet:"id"`
	Name           string `json:"name" csv:"name" parquet:"name"`
	Wealth         int64  `json:"wealth" csv:"wealth" parquet:"wealth"`
	FoundYear      int64  `json:"found_year" csv:"found_year" parquet:"found_year"`
	Location       string `json:"location" csv:"location" parquet:"location"`
	SupporterCount int64  `json:"supporter_count" csv:"supporter_count" parquet:"supporter_count"`
	StadiumName    string `json:"stadium_name" csv:"stadium_name" parquet:"stadium_name"`
	Nickname       string `json:"nickname" csv:"nickname" parquet:"nickname"`
	LeagueID       int64  `json:"league_id" csv:"league_id" parquet:"league_id"`
}

func (t Team) String() string {
	return fmt.Sprintf("%s (ID: %d)", t.Name, t.ID)
}

// LeagueLabel is the category label a league is charted under.
func LeagueLabel(id int64) string {
	return "League " + strconv.FormatInt(id, 10)
}

// League returns the team's league category label.
func (t Team) League() string { return LeagueLabel(t.LeagueID) }

// Adapter exposes the chartable team fields under the engine field keys.
// The name dimension is kept for search and filtering only.
func Adapter() *engine.DomainAdapter[Team] {
	return engine.NewDomainAdapter[Team]().
		Dimension(engine.FieldLocation, func(t Team) string { return t.Location }).
		Dimension(engine.FieldLeague, Team.League).
		Dimension("name", func(t Team) string { return t.Name }).
		Measure(engine.FieldWealth, func(t Team) int64 { return t.Wealth }).
		Measure(engine.FieldSupporters, func(t Team) int64 { return t.SupporterCount }).
		Measure(engine.FieldFoundYear, func(t Team) int64 { return t.FoundYear })
}

// View binds teams without copying them.
func View(teams []Team) engine.RecordView {
	return Adapter().Bind(teams)
}

// ============================================================================
// LIST QUERIES
// ============================================================================

// SearchField restricts a free-text search to one column.
type SearchField int

const (
	SearchAll SearchField = iota
	SearchName
	SearchLocation
	SearchLeague
)

// ParseSearchField accepts "all", "name", "location" or "league".
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SearchAll, nil
	case "name":
		return SearchName, nil
	case "location":
		return SearchLocation, nil
	case "league":
		return SearchLeague, nil
	}
	return SearchAll, fmt.Errorf("unknown search field %q", s)
}

// searchString concatenates every field, for SearchAll.
func (t Team) searchString() string {
	return fmt.Sprintf("%d%s%d%d%s%d%s%s%d",
		t.ID, t.Name, t.Wealth, t.FoundYear, t.Location,
		t.SupporterCount, t.StadiumName, t.Nickname, t.LeagueID)
}

// Matches reports whether term occurs, case-insensitively, in the chosen field.
// An empty term matches everything.
func (t Team) Matches(term string, field SearchField) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	var hay string
	switch field {
	case SearchName:
		hay = t.Name
	case SearchLocation:
		hay = t.Location
	case SearchLeague:
		hay = strconv.FormatInt(t.LeagueID, 10)
	default:
		hay = t.searchString()
	}
	return strings.Contains(strings.ToLower(hay), term)
}

// Search returns the teams matching term, in input order.
func Search(teams []Team, term string, field SearchField) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t.Matches(term, field) {
			out = append(out, t)
		}
	}
	return out
}

// Query is the set of list filters a chart can be narrowed by.
// Zero fields do not restrict.
type Query struct {
	Location string `json:"location,omitempty"`
	LeagueID *int64 `json:"league_id,omitempty"`
	Wealth   string `json:"wealth,omitempty"` // "1000-5000", "50001+"
	Years    string `json:"years,omitempty"`  // "1900-1950"
}

// Filters converts q into engine filters.
func (q Query) Filters() (engine.Filters, error) {
	f := engine.Filters{
		Dimensions: map[string][]string{},
		Measures:   map[string]engine.RangeBucket{},
	}
	if q.Location != "" {
		f.Dimensions[engine.FieldLocation] = []string{q.Location}
	}
	if q.LeagueID != nil {
		f.Dimensions[engine.FieldLeague] = []string{LeagueLabel(*q.LeagueID)}
	}
	if q.Wealth != "" {
		r, err := engine.ParseRange(q.Wealth)
		if err != nil {
			return engine.Filters{}, fmt.Errorf("wealth filter: %w", err)
		}
		f.Measures[engine.FieldWealth] = r
	}
	if q.Years != "" {
		r, err := engine.ParseRange(q.Years)
		if err != nil {
			return engine.Filters{}, fmt.Errorf("year filter: %w", err)
		}
		f.Measures[engine.FieldFoundYear] = r
	}
	return f, nil
}

// UniqueLocations lists the distinct locations, sorted.
func UniqueLocations(teams []Team) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range teams {
		if !seen[t.Location] {
			seen[t.Location] = true
			out = append(out, t.Location)
		}
	}
	sort.Strings(out)
	return out
}

// UniqueLeagues lists the distinct league ids, ascending.
func UniqueLeagues(teams []Team) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, t := range teams {
		if !seen[t.LeagueID] {
			seen[t.LeagueID] = true
			out = append(out, t.LeagueID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
