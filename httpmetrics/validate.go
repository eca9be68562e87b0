package httpmetrics

import (
	"fmt"
	"regexp"
	"time"
)

// Validate fills the defaults into opts and checks every option. It has no
// side effects; the first failing option is reported as an
// *InvalidConfigurationError.
func Validate(opts Options) (Config, error) {
	cfg := Config{
		Route:            DefaultRoute,
		RouteEnabled:     true,
		PromDefaultDelay: DefaultPromDefaultDelay * time.Millisecond,
		MaxPathsToCount:  DefaultMaxPathsToCount,
	}

	switch {
	case opts.DisableRoute && opts.Route != nil:
		return Config{}, invalidField(ErrInvalidRoute, "route", "cannot be set while the route is disabled")
	case opts.DisableRoute:
		cfg.Route, cfg.RouteEnabled = "", false
	case opts.Route != nil:
		if *opts.Route == "" {
			return Config{}, invalidField(ErrInvalidRoute, "route", "must be a non empty string or disabled")
		}
		cfg.Route = *opts.Route
	}

	defaults, err := normalizeDefaults(opts.Defaults)
	if err != nil {
		return Config{}, err
	}
	cfg.Defaults = defaults

	rule, err := NormalizeExclude(opts.Exclude)
	if err != nil {
		return Config{}, err
	}
	cfg.Exclude = rule

	if opts.PromDefaultDelay != nil {
		if *opts.PromDefaultDelay < MinPromDefaultDelay {
			return Config{}, invalidField(ErrInvalidPromDefaultDelay, "promDefaultDelay",
				fmt.Sprintf("must be a number >= %d", MinPromDefaultDelay))
		}
		cfg.PromDefaultDelay = time.Duration(*opts.PromDefaultDelay) * time.Millisecond
	}

	if opts.MaxPathsToCount != nil {
		if *opts.MaxPathsToCount < 0 {
			return Config{}, invalidField(ErrInvalidMaxPathsToCount, "maxPathsToCount", "must be a number >= 0")
		}
		cfg.MaxPathsToCount = *opts.MaxPathsToCount
	}

	return cfg, nil
}

func normalizeDefaults(names []string) ([]string, error) {
	if names == nil {
		return DefaultMetrics(), nil
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for i, name := range names {
		if name == "" {
			return nil, invalidField(ErrInvalidDefaults, "defaults",
				fmt.Sprintf("entry %d must be a non empty metric name", i))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// NormalizeExclude converts one of the values accepted by Options.Exclude
// into an ExcludeRule.
func NormalizeExclude(v any) (ExcludeRule, error) {
	switch x := v.(type) {
	case nil:
		return ExcludeRule{}, nil
	case ExcludeRule:
		return checkRule(x)
	case bool:
		if !x {
			return ExcludeRule{}, nil
		}
	case string:
		return ExcludeList(x), nil
	case []string:
		return ExcludeList(x...), nil
	case []any:
		list := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return ExcludeList(list...), nil
	case *regexp.Regexp:
		if x != nil {
			return ExcludePattern(x), nil
		}
	case ExcludeFunc:
		if x != nil {
			return ExcludePredicate(x), nil
		}
	case func(string) bool:
		if x != nil {
			return ExcludePredicate(x), nil
		}
	}
	return ExcludeRule{}, invalidField(ErrInvalidExclude, "exclude",
		fmt.Sprintf("must be string | []string | *regexp.Regexp | func(string) bool, got %T", v))
}

// checkRule rejects caller-built rules that would fail on the first request.
func checkRule(r ExcludeRule) (ExcludeRule, error) {
	switch r.Kind {
	case ExcludeKindNone:
		return ExcludeRule{}, nil
	case ExcludeKindList:
		return ExcludeList(r.List...), nil
	case ExcludeKindPattern:
		if r.Pattern != nil {
			return ExcludePattern(r.Pattern), nil
		}
		return ExcludeRule{}, invalidField(ErrInvalidExclude, "exclude", "pattern rule has a nil regular expression")
	case ExcludeKindPredicate:
		if r.Predicate != nil {
			return ExcludePredicate(r.Predicate), nil
		}
		return ExcludeRule{}, invalidField(ErrInvalidExclude, "exclude", "predicate rule has a nil function")
	}
	return ExcludeRule{}, invalidField(ErrInvalidExclude, "exclude", fmt.Sprintf("unknown rule kind %d", int(r.Kind)))
}
