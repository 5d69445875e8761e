package helpers

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/spektr-org/teamcharts/engine"
	"github.com/spektr-org/teamcharts/teams"
)

// ============================================================================
// CSV HELPER — Team rows in, table rows out
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, export).
// Headers are matched after snake-casing, so "Supporter Count" and
// "supporterCount" both map to supporter_count.
// ============================================================================

var requiredColumns = []string{"name", "wealth", "found_year", "location", "supporter_count", "league_id"}

var headerAliases = map[string]string{
	"team":       "name",
	"team_name":  "name",
	"founded":    "found_year",
	"year":       "found_year",
	"supporters": "supporter_count",
	"league":     "league_id",
	"stadium":    "stadium_name",
	"city":       "location",
	"team_id":    "id",
}

// ParseTeamsCSV parses CSV bytes with a header row into teams.
// A missing id column numbers teams from 1 in file order.
func ParseTeamsCSV(data []byte) ([]teams.Team, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV headers")
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, errors.Errorf("CSV is missing required column %q", c)
		}
	}

	var out []teams.Team
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		p := rowParser{row: row, cols: cols, line: line}
		t := teams.Team{
			ID:             int64(len(out) + 1),
			Name:           p.text("name"),
			Location:       p.text("location"),
			StadiumName:    p.text("stadium_name"),
			Nickname:       p.text("nickname"),
			Wealth:         p.number("wealth"),
			FoundYear:      p.number("found_year"),
			SupporterCount: p.number("supporter_count"),
			LeagueID:       p.number("league_id"),
		}
		if _, ok := cols["id"]; ok {
			t.ID = p.number("id")
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, t)
	}
	return out, nil
}

// rowParser reads typed cells from one row and keeps the first error.
type rowParser struct {
	row  []string
	cols map[string]int
	line int
	err  error
}

func (p *rowParser) text(col string) string {
	i, ok := p.cols[col]
	if !ok || i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) number(col string) int64 {
	s := strings.ReplaceAll(p.text(col), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil && p.err == nil {
		p.err = errors.Wrapf(err, "line %d: column %s", p.line, col)
	}
	return v
}

// WriteTableCSV writes the table header, rows and summary row.
func WriteTableCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return errors.Wrap(err, "failed to write CSV rows")
	}

	if table.Summary != nil {
		row := make([]string, len(table.Columns))
		row[0] = table.Summary.Label
		for i, c := range table.Columns[1:] {
			row[i+1] = table.Summary.Values[c.Key]
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV summary")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV")
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var result strings.Builder
	prev := rune(0)
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		result.WriteRune(r)
		prev = r
	}

	s = strings.ToLower(result.String())
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}
