package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// newConfigCmd creates the config subcommand
func newConfigCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration after defaults, the config file and TEAMCHARTS_*
environment overrides are applied. The output is a valid config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			return withOutput(out, func(w io.Writer) error {
				_, err := w.Write(data)
				return errors.Wrap(err, "failed to write config")
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to file instead of stdout")
	return cmd
}
