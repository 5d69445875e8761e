package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/teamcharts/helpers"
	"github.com/spektr-org/teamcharts/teams"
)

type teamsFlags struct {
	data   string
	search string
	field  string
	format string
	out    string
}

// newTeamsCmd creates the teams subcommand
func newTeamsCmd() *cobra.Command {
	var f teamsFlags

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List, search or convert the team data",
		Long: `List the teams, optionally narrowed by a case-insensitive search.

Formats:
  text      One team per line, then the distinct locations and leagues (default)
  json      Teams as JSON
  parquet   Teams as Parquet, readable by "chart --data"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeams(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.data, "data", "", "teams CSV or .parquet file, - for CSV on stdin (required)")
	flags.StringVar(&f.search, "search", "", "only teams containing this text")
	flags.StringVar(&f.field, "field", "all", "search field: all, name, location or league")
	flags.StringVarP(&f.format, "format", "f", "text", "output format: text, json or parquet")
	flags.StringVarP(&f.out, "out", "o", "", "write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runTeams(f teamsFlags) error {
	field, err := teams.ParseSearchField(f.field)
	if err != nil {
		return err
	}
	switch f.format {
	case "text", "json", "parquet":
	default:
		return fmt.Errorf("unknown format %q (want text, json or parquet)", f.format)
	}

	list, err := loadTeams(f.data)
	if err != nil {
		return err
	}
	found := teams.Search(list, f.search, field)
	log.Debug("teams search", zap.String("term", f.search), zap.Int("matched", len(found)), zap.Int("total", len(list)))

	return withOutput(f.out, func(w io.Writer) error {
		switch f.format {
		case "json":
			return helpers.WriteJSON(w, found, true)
		case "parquet":
			return helpers.WriteTeamsParquet(w, found)
		}
		return writeTeamsText(w, found)
	})
}

func writeTeamsText(w io.Writer, list []teams.Team) error {
	for _, t := range list {
		if _, err := fmt.Fprintf(w, "%s  %s, %s\n", t, t.Location, t.League()); err != nil {
			return err
		}
	}
	leagues := teams.UniqueLeagues(list)
	labels := make([]string, len(leagues))
	for i, id := range leagues {
		labels[i] = teams.LeagueLabel(id)
	}
	_, err := fmt.Fprintf(w, "\n%d teams\nLocations: %v\nLeagues:   %v\n", len(list), teams.UniqueLocations(list), labels)
	return err
}
