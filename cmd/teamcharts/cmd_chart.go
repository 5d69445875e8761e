package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/teamcharts/engine"
	"github.com/spektr-org/teamcharts/helpers"
	"github.com/spektr-org/teamcharts/render"
	"github.com/spektr-org/teamcharts/teams"
)

type chartFlags struct {
	data        string
	dimension   string
	style       string
	table       bool
	percent     bool
	expandOther bool
	location    string
	league      int64
	wealth      string
	years       string
	width       float64
	height      float64
	format      string
	out         string
}

// newChartCmd creates the chart subcommand
func newChartCmd() *cobra.Command {
	var f chartFlags

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a bar or pie chart",
		Long: `Bucket the teams by one dimension and lay the result out for the canvas.

Dimensions: wealth, supporters, location, league, year
Styles:     bar, pie

Formats:
  json      Full result as JSON (default)
  pretty    Pretty-printed JSON
  yaml      Full result as YAML
  text      Terminal chart
  csv       Bucket table (ready for Sheets/Excel)
  parquet   Bucket rows as Parquet
  png, svg  Rendered image`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.data, "data", "", "teams CSV or .parquet file, - for CSV on stdin (required)")
	flags.StringVarP(&f.dimension, "dimension", "d", "wealth", "dimension to bucket by")
	flags.StringVarP(&f.style, "style", "s", "bar", "chart style: bar or pie")
	flags.BoolVar(&f.table, "table", false, "include the detail table")
	flags.BoolVar(&f.percent, "percent", false, "include percentages in the table")
	flags.BoolVar(&f.expandOther, "expand-other", false, `list the categories folded into "Other" in the table`)
	flags.StringVar(&f.location, "location", "", "only teams in this location")
	flags.Int64Var(&f.league, "league", 0, "only teams in this league")
	flags.StringVar(&f.wealth, "wealth", "", `only teams in this wealth range, e.g. "1000-5000" or "50001+"`)
	flags.StringVar(&f.years, "years", "", `only teams founded in this range, e.g. "1900-1950"`)
	flags.Float64Var(&f.width, "width", 0, "canvas width (default from config)")
	flags.Float64Var(&f.height, "height", 0, "canvas height (default from config)")
	flags.StringVarP(&f.format, "format", "f", "json", "output format")
	flags.StringVarP(&f.out, "out", "o", "", "write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runChart(cmd *cobra.Command, f chartFlags) error {
	write, err := chartWriter(f.format)
	if err != nil {
		return err
	}
	req, err := chartRequest(cmd, f)
	if err != nil {
		return err
	}

	list, err := loadTeams(f.data)
	if err != nil {
		return err
	}
	log.Debug("teams loaded", zap.Int("count", len(list)), zap.String("path", f.data))

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	session := engine.NewSession(append(opts, engine.WithLogger(log))...)

	res, err := session.Compute(teams.View(list), req)
	if err != nil {
		return errors.Wrap(err, "chart failed")
	}
	log.Info("chart computed",
		zap.Stringer("state", session.State()),
		zap.Stringer("dimension", req.Dimension),
		zap.Stringer("style", req.Style),
		zap.Int("total", res.Dataset.Total),
		zap.Int("buckets", res.Dataset.Len()),
	)
	for _, e := range res.Errors {
		log.Warn("chart degraded", zap.String("error", e))
	}

	return withOutput(f.out, func(w io.Writer) error { return write(w, res) })
}

// chartRequest builds the engine request from the command flags.
func chartRequest(cmd *cobra.Command, f chartFlags) (engine.ChartRequest, error) {
	dim, err := engine.ParseDimension(f.dimension)
	if err != nil {
		return engine.ChartRequest{}, err
	}
	style, err := engine.ParseStyle(f.style)
	if err != nil {
		return engine.ChartRequest{}, err
	}

	q := teams.Query{Location: f.location, Wealth: f.wealth, Years: f.years}
	if cmd.Flags().Changed("league") {
		q.LeagueID = &f.league
	}
	filters, err := q.Filters()
	if err != nil {
		return engine.ChartRequest{}, err
	}

	canvas := cfg.CanvasSize()
	if f.width > 0 {
		canvas.Width = f.width
	}
	if f.height > 0 {
		canvas.Height = f.height
	}

	return engine.ChartRequest{
		Dimension:      dim,
		Style:          style,
		ShowTable:      f.table || f.percent || f.expandOther,
		ShowPercentage: f.percent,
		ExpandOther:    f.expandOther,
		Canvas:         canvas,
		Filters:        filters,
	}, nil
}

type resultWriter func(io.Writer, *engine.Result) error

// chartWriter resolves the --format flag before any work is done.
func chartWriter(format string) (resultWriter, error) {
	switch format {
	case "json", "pretty":
		pretty := format == "pretty"
		return func(w io.Writer, res *engine.Result) error { return helpers.WriteJSON(w, res, pretty) }, nil
	case "yaml":
		return func(w io.Writer, res *engine.Result) error { return helpers.WriteYAML(w, res) }, nil
	case "text":
		return render.Text, nil
	case "csv":
		return func(w io.Writer, res *engine.Result) error {
			table := res.Table
			if table == nil {
				table = engine.BuildTable(res.Request, res.Dataset)
			}
			return helpers.WriteTableCSV(w, table)
		}, nil
	case "parquet":
		return func(w io.Writer, res *engine.Result) error {
			return helpers.WriteDatasetParquet(w, res.Request.Dimension, res.Dataset)
		}, nil
	case "png":
		return render.PNG, nil
	case "svg":
		return render.SVG, nil
	}
	return nil, fmt.Errorf("unknown format %q (want json, pretty, yaml, text, csv, parquet, png or svg)", format)
}
