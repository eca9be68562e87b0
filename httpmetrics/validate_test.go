package httpmetrics_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := httpmetrics.Validate(httpmetrics.Options{})

	require.NoError(t, err)
	assert.Equal(t, "/metrics", cfg.Route)
	assert.True(t, cfg.RouteEnabled)
	assert.Equal(t, []string{"status", "pathDuration", "pathCount"}, cfg.Defaults)
	assert.Equal(t, httpmetrics.ExcludeKindNone, cfg.Exclude.Kind)
	assert.Equal(t, time.Second, cfg.PromDefaultDelay)
	assert.Equal(t, 100, cfg.MaxPathsToCount)
}

func TestValidate_Route(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        httpmetrics.Options
		wantRoute   string
		wantEnabled bool
		wantErr     bool
	}{
		{name: "custom", opts: httpmetrics.Options{Route: httpmetrics.Ptr("/prom")}, wantRoute: "/prom", wantEnabled: true},
		{name: "disabled", opts: httpmetrics.Options{DisableRoute: true}, wantRoute: "", wantEnabled: false},
		{name: "empty", opts: httpmetrics.Options{Route: httpmetrics.Ptr("")}, wantErr: true},
		{name: "disabled with route", opts: httpmetrics.Options{DisableRoute: true, Route: httpmetrics.Ptr("/prom")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := httpmetrics.Validate(tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, httpmetrics.ErrInvalidConfiguration)
				assert.ErrorIs(t, err, httpmetrics.ErrInvalidRoute)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoute, cfg.Route)
			assert.Equal(t, tt.wantEnabled, cfg.RouteEnabled)
		})
	}
}

func TestValidate_DefaultsList(t *testing.T) {
	t.Parallel()

	cfg, err := httpmetrics.Validate(httpmetrics.Options{Defaults: []string{"status", "unknown", "status"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "unknown"}, cfg.Defaults)
	assert.True(t, cfg.Enabled(httpmetrics.MetricStatus))
	assert.False(t, cfg.Enabled(httpmetrics.MetricPathCount))

	cfg, err = httpmetrics.Validate(httpmetrics.Options{Defaults: []string{}})
	require.NoError(t, err)
	assert.Empty(t, cfg.Defaults)

	_, err = httpmetrics.Validate(httpmetrics.Options{Defaults: []string{"status", ""}})
	assert.ErrorIs(t, err, httpmetrics.ErrInvalidDefaults)
}

func TestValidate_Exclude(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`test`)

	tests := []struct {
		name     string
		exclude  any
		wantKind httpmetrics.ExcludeKind
		wantList []string
		wantErr  bool
	}{
		{name: "nil", exclude: nil, wantKind: httpmetrics.ExcludeKindNone},
		{name: "false", exclude: false, wantKind: httpmetrics.ExcludeKindNone},
		{name: "string", exclude: "/test", wantKind: httpmetrics.ExcludeKindList, wantList: []string{"/test"}},
		{name: "empty string", exclude: "", wantKind: httpmetrics.ExcludeKindList, wantList: []string{""}},
		{name: "string list", exclude: []string{"/test1", "/test2"}, wantKind: httpmetrics.ExcludeKindList, wantList: []string{"/test1", "/test2"}},
		{name: "mixed list", exclude: []any{"/test1", "/test2", struct{}{}}, wantKind: httpmetrics.ExcludeKindList, wantList: []string{"/test1", "/test2"}},
		{name: "pattern", exclude: re, wantKind: httpmetrics.ExcludeKindPattern},
		{name: "func", exclude: func(string) bool { return true }, wantKind: httpmetrics.ExcludeKindPredicate},
		{name: "exclude func", exclude: httpmetrics.ExcludeFunc(func(string) bool { return true }), wantKind: httpmetrics.ExcludeKindPredicate},
		{name: "rule", exclude: httpmetrics.ExcludeList("/a"), wantKind: httpmetrics.ExcludeKindList, wantList: []string{"/a"}},
		{name: "number", exclude: 1, wantErr: true},
		{name: "true", exclude: true, wantErr: true},
		{name: "struct", exclude: struct{}{}, wantErr: true},
		{name: "nil pattern", exclude: (*regexp.Regexp)(nil), wantErr: true},
		{name: "rule with nil pattern", exclude: httpmetrics.ExcludePattern(nil), wantErr: true},
		{name: "rule with nil predicate", exclude: httpmetrics.ExcludeRule{Kind: httpmetrics.ExcludeKindPredicate}, wantErr: true},
		{name: "rule with unknown kind", exclude: httpmetrics.ExcludeRule{Kind: httpmetrics.ExcludeKind(42)}, wantErr: true},
		{name: "pattern rule", exclude: httpmetrics.ExcludePattern(re), wantKind: httpmetrics.ExcludeKindPattern},
		{name: "zero rule", exclude: httpmetrics.ExcludeRule{}, wantKind: httpmetrics.ExcludeKindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := httpmetrics.Validate(httpmetrics.Options{Exclude: tt.exclude})
			if tt.wantErr {
				assert.ErrorIs(t, err, httpmetrics.ErrInvalidExclude)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, cfg.Exclude.Kind)
			if tt.wantList != nil {
				assert.Equal(t, tt.wantList, cfg.Exclude.List)
			}
		})
	}
}

func TestValidate_PromDefaultDelay(t *testing.T) {
	t.Parallel()

	cfg, err := httpmetrics.Validate(httpmetrics.Options{PromDefaultDelay: httpmetrics.Ptr(2500)})
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.PromDefaultDelay)

	for _, delay := range []int{999, 0, -1} {
		_, err := httpmetrics.Validate(httpmetrics.Options{PromDefaultDelay: httpmetrics.Ptr(delay)})
		assert.ErrorIs(t, err, httpmetrics.ErrInvalidPromDefaultDelay, "delay %d", delay)
	}
}

func TestValidate_MaxPathsToCount(t *testing.T) {
	t.Parallel()

	cfg, err := httpmetrics.Validate(httpmetrics.Options{MaxPathsToCount: httpmetrics.Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxPathsToCount)

	_, err = httpmetrics.Validate(httpmetrics.Options{MaxPathsToCount: httpmetrics.Ptr(-1)})
	assert.ErrorIs(t, err, httpmetrics.ErrInvalidMaxPathsToCount)
}

func TestInvalidConfigurationError_NamesField(t *testing.T) {
	t.Parallel()

	_, err := httpmetrics.Validate(httpmetrics.Options{MaxPathsToCount: httpmetrics.Ptr(-5)})

	var cfgErr *httpmetrics.InvalidConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "maxPathsToCount", cfgErr.Field)
	assert.Contains(t, err.Error(), "maxPathsToCount")
	assert.NotErrorIs(t, err, httpmetrics.ErrInvalidRoute)
}
