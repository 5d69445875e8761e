package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/teamcharts/helpers"
	"github.com/spektr-org/teamcharts/internal/logger"
	"github.com/spektr-org/teamcharts/schema"
	"github.com/spektr-org/teamcharts/teams"
)

// ============================================================================
// TEAMCHARTS CLI — Team statistics charts from a CSV or Parquet file
// ============================================================================

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool

	// Set by the root PersistentPreRunE
	cfg *schema.Config
	log = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamcharts",
		Short: "Bar and pie charts of team statistics",
		Long: `teamcharts buckets a list of sports teams by wealth, supporter count,
location, league or founding year and lays the result out as a bar or pie chart.

Examples:
  teamcharts chart --data teams.csv --dimension wealth
  teamcharts chart --data teams.csv --dimension location --style pie --format png --out location.png
  teamcharts chart --data teams.csv --dimension league --table --percent --format text
  teamcharts teams --data teams.csv --search lisbon --field location
  teamcharts config > teamcharts.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ./teamcharts.yaml or ~/.config/teamcharts/teamcharts.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newChartCmd(),
		newTeamsCmd(),
		newConfigCmd(),
	)

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every subcommand uses.
// A .env file in the working directory may carry TEAMCHARTS_* overrides.
func setup() error {
	envErr := godotenv.Load()

	loaded, err := schema.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	l, err := logger.New(logger.Config{
		Level:       level,
		EnableJSON:  cfg.Log.Format == "json",
		EnableColor: cfg.Log.Format != "json",
	})
	if err != nil {
		return err
	}
	log = l
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("failed to load .env file", zap.Error(envErr))
	}
	log.Debug("configuration loaded", zap.String("path", configPath))
	return nil
}

// ============================================================================
// SHARED I/O
// ============================================================================

// loadTeams reads teams from a .parquet file, or from CSV ("-" is stdin).
func loadTeams(path string) ([]teams.Team, error) {
	if path == "" {
		return nil, errors.New("--data is required")
	}

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open data file")
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return nil, errors.Wrap(err, "failed to stat data file")
		}
		return helpers.ReadTeamsParquet(f, info.Size())
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read data file")
	}
	return helpers.ParseTeamsCSV(data)
}

// withOutput runs fn against the --out file, or stdout when out is empty.
func withOutput(out string, fn func(io.Writer) error) (err error) {
	if out == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close output file")
		}
	}()
	if err := fn(f); err != nil {
		return err
	}
	log.Info("output written", zap.String("path", out))
	return nil
}
