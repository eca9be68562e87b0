package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate middleware options",
	Long: `Load the middleware options, validate them and print the effective
configuration.

Examples:
  httpmetrics-demo validate --config httpmetrics.yaml
  HTTPMETRICS_MAX_PATHS_TO_COUNT=0 httpmetrics-demo validate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(out io.Writer, path string) error {
	opts, err := loadOptions(path)
	if err != nil {
		return err
	}
	cfg, err := httpmetrics.Validate(opts)
	if err != nil {
		return err
	}

	route := cfg.Route
	if !cfg.RouteEnabled {
		route = "(disabled)"
	}
	fmt.Fprintf(out, "route:              %s\n", route)
	fmt.Fprintf(out, "defaults:           %v\n", cfg.Defaults)
	fmt.Fprintf(out, "exclude:            %s\n", cfg.Exclude.Kind)
	fmt.Fprintf(out, "prom default delay: %s\n", cfg.PromDefaultDelay)
	fmt.Fprintf(out, "max paths to count: %d\n", cfg.MaxPathsToCount)
	return nil
}
