package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
)

// envPrefix is the environment prefix read when no config file is given.
const envPrefix = "HTTPMETRICS"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "httpmetrics-demo",
	Short: "Demo API instrumented with the httpmetrics middleware",
	Long: `httpmetrics-demo runs a small HTTP API behind the httpmetrics middleware.

Middleware options come from the YAML file given with --config or, without
one, from HTTPMETRICS_* environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "middleware config file (YAML)")
}

// loadOptions reads middleware options from path, or from the environment
// when path is empty.
func loadOptions(path string) (httpmetrics.Options, error) {
	var (
		fc  httpmetrics.FileConfig
		err error
	)
	if path != "" {
		fc, err = httpmetrics.LoadFile(path)
	} else {
		fc, err = httpmetrics.LoadEnv(envPrefix)
	}
	if err != nil {
		return httpmetrics.Options{}, err
	}
	return fc.Options()
}
