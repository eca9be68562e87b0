package httpmetrics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileConfig is the serializable subset of Options. Predicate exclusion
// rules cannot be expressed in a file and must be set in code.
//
// YAML example:
//
//	route: /internal/metrics
//	defaults: [status, pathCount]
//	exclude: [/healthz, /readyz]
//	prom_default_delay_ms: 5000
//	max_paths_to_count: 250
//
// With LoadEnv("HTTPMETRICS") the same settings are read from
// HTTPMETRICS_ROUTE, HTTPMETRICS_DEFAULTS (comma separated), and so on.
type FileConfig struct {
	Route        *string `yaml:"route" envconfig:"ROUTE"`
	DisableRoute bool    `yaml:"disable_route" envconfig:"DISABLE_ROUTE"`

	Defaults []string `yaml:"defaults" envconfig:"DEFAULTS"`

	// Exclude and ExcludePattern are mutually exclusive.
	Exclude        []string `yaml:"exclude" envconfig:"EXCLUDE"`
	ExcludePattern string   `yaml:"exclude_pattern" envconfig:"EXCLUDE_PATTERN"`

	PromDefaultDelayMS *int `yaml:"prom_default_delay_ms" envconfig:"PROM_DEFAULT_DELAY_MS"`
	MaxPathsToCount    *int `yaml:"max_paths_to_count" envconfig:"MAX_PATHS_TO_COUNT"`
}

// LoadFile reads a YAML FileConfig. Unknown keys are rejected; an empty file
// yields the zero FileConfig.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read httpmetrics config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("parse httpmetrics config %s: %w", path, err)
	}
	return fc, nil
}

// LoadEnv reads a FileConfig from environment variables named
// <prefix>_<KEY>.
func LoadEnv(prefix string) (FileConfig, error) {
	var fc FileConfig
	if err := envconfig.Process(prefix, &fc); err != nil {
		return fc, fmt.Errorf("load httpmetrics config from environment: %w", err)
	}
	return fc, nil
}

// Options converts fc into Options with no collaborators set. An invalid
// ExcludePattern, or one combined with Exclude, fails with ErrInvalidExclude.
func (fc FileConfig) Options() (Options, error) {
	opts := Options{
		Route:            fc.Route,
		DisableRoute:     fc.DisableRoute,
		Defaults:         fc.Defaults,
		PromDefaultDelay: fc.PromDefaultDelayMS,
		MaxPathsToCount:  fc.MaxPathsToCount,
	}

	switch {
	case fc.ExcludePattern != "" && len(fc.Exclude) > 0:
		return Options{}, invalidField(ErrInvalidExclude, "exclude", "exclude and exclude_pattern cannot both be set")
	case fc.ExcludePattern != "":
		re, err := regexp.Compile(fc.ExcludePattern)
		if err != nil {
			return Options{}, invalidField(ErrInvalidExclude, "exclude", fmt.Sprintf("invalid pattern: %v", err))
		}
		opts.Exclude = re
	case fc.Exclude != nil:
		opts.Exclude = fc.Exclude
	}

	return opts, nil
}
