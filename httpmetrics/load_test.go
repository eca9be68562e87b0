package httpmetrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "httpmetrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
route: /internal/metrics
defaults: [status, pathCount]
exclude: [/healthz, /readyz]
prom_default_delay_ms: 5000
max_paths_to_count: 250
`)

	fc, err := httpmetrics.LoadFile(path)
	require.NoError(t, err)

	opts, err := fc.Options()
	require.NoError(t, err)

	cfg, err := httpmetrics.Validate(opts)
	require.NoError(t, err)
	assert.Equal(t, "/internal/metrics", cfg.Route)
	assert.Equal(t, []string{"status", "pathCount"}, cfg.Defaults)
	assert.Equal(t, httpmetrics.ExcludeKindList, cfg.Exclude.Kind)
	assert.Equal(t, []string{"/healthz", "/readyz"}, cfg.Exclude.List)
	assert.Equal(t, 250, cfg.MaxPathsToCount)
	assert.Equal(t, int64(5000), cfg.PromDefaultDelay.Milliseconds())
}

func TestLoadFile_Pattern(t *testing.T) {
	t.Parallel()

	fc, err := httpmetrics.LoadFile(writeConfig(t, "disable_route: true\nexclude_pattern: '^/debug/'\n"))
	require.NoError(t, err)

	opts, err := fc.Options()
	require.NoError(t, err)

	cfg, err := httpmetrics.Validate(opts)
	require.NoError(t, err)
	assert.False(t, cfg.RouteEnabled)
	require.Equal(t, httpmetrics.ExcludeKindPattern, cfg.Exclude.Kind)
	assert.True(t, cfg.Exclude.Pattern.MatchString("/debug/pprof"))
}

func TestLoadFile_Empty(t *testing.T) {
	t.Parallel()

	fc, err := httpmetrics.LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, httpmetrics.FileConfig{}, fc)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := httpmetrics.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = httpmetrics.LoadFile(writeConfig(t, "unknown_key: 1\n"))
	assert.Error(t, err)

	fc, err := httpmetrics.LoadFile(writeConfig(t, "exclude: [/a]\nexclude_pattern: '^/b'\n"))
	require.NoError(t, err)
	_, err = fc.Options()
	assert.ErrorIs(t, err, httpmetrics.ErrInvalidExclude)

	fc, err = httpmetrics.LoadFile(writeConfig(t, "exclude_pattern: '(['\n"))
	require.NoError(t, err)
	_, err = fc.Options()
	assert.ErrorIs(t, err, httpmetrics.ErrInvalidConfiguration)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HMTEST_ROUTE", "/prom")
	t.Setenv("HMTEST_DEFAULTS", "status,pathDuration")
	t.Setenv("HMTEST_EXCLUDE", "/healthz")
	t.Setenv("HMTEST_MAX_PATHS_TO_COUNT", "0")

	fc, err := httpmetrics.LoadEnv("HMTEST")
	require.NoError(t, err)
	assert.Nil(t, fc.PromDefaultDelayMS)

	opts, err := fc.Options()
	require.NoError(t, err)

	cfg, err := httpmetrics.Validate(opts)
	require.NoError(t, err)
	assert.Equal(t, "/prom", cfg.Route)
	assert.Equal(t, []string{"status", "pathDuration"}, cfg.Defaults)
	assert.Equal(t, []string{"/healthz"}, cfg.Exclude.List)
	assert.Equal(t, 0, cfg.MaxPathsToCount)
}

func TestLoadEnv_InvalidNumber(t *testing.T) {
	t.Setenv("HMBAD_MAX_PATHS_TO_COUNT", "many")

	_, err := httpmetrics.LoadEnv("HMBAD")
	assert.Error(t, err)
}
