package httpmetrics

import (
	"regexp"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
)

// ExcludeFunc reports whether a path label must not be measured. It is
// called at most once per distinct label; the answer is cached for the life
// of the Middleware.
type ExcludeFunc func(path string) bool

// ExcludeKind tags the variant held by an ExcludeRule.
type ExcludeKind int

const (
	ExcludeKindNone ExcludeKind = iota
	ExcludeKindList
	ExcludeKindPattern
	ExcludeKindPredicate
)

func (k ExcludeKind) String() string {
	switch k {
	case ExcludeKindList:
		return "list"
	case ExcludeKindPattern:
		return "pattern"
	case ExcludeKindPredicate:
		return "predicate"
	default:
		return "none"
	}
}

// ExcludeRule is the normalized exclusion rule. Only the field matching Kind
// is set. The zero value excludes nothing.
type ExcludeRule struct {
	Kind      ExcludeKind
	List      []string
	Pattern   *regexp.Regexp
	Predicate ExcludeFunc
}

// ExcludeList excludes the given exact labels.
func ExcludeList(paths ...string) ExcludeRule {
	return ExcludeRule{Kind: ExcludeKindList, List: append([]string(nil), paths...)}
}

// ExcludePattern excludes the labels matched by re.
func ExcludePattern(re *regexp.Regexp) ExcludeRule {
	return ExcludeRule{Kind: ExcludeKindPattern, Pattern: re}
}

// ExcludePredicate excludes the labels for which fn returns true.
func ExcludePredicate(fn ExcludeFunc) ExcludeRule {
	return ExcludeRule{Kind: ExcludeKindPredicate, Predicate: fn}
}

// matches evaluates the rule without caching.
func (r ExcludeRule) matches(label string) bool {
	switch r.Kind {
	case ExcludeKindList:
		for _, p := range r.List {
			if p == label {
				return true
			}
		}
	case ExcludeKindPattern:
		return r.Pattern.MatchString(label)
	case ExcludeKindPredicate:
		return r.Predicate(label)
	}
	return false
}

// exclusionEvaluator memoizes ExcludeRule decisions per path label. A label
// is evaluated by the rule at most once, including under concurrent first
// requests; negative answers are cached as well.
type exclusionEvaluator struct {
	rule ExcludeRule
	log  logger.Logger

	mu    sync.RWMutex
	cache map[string]bool
	group singleflight.Group
}

func newExclusionEvaluator(rule ExcludeRule, log logger.Logger) *exclusionEvaluator {
	return &exclusionEvaluator{
		rule:  rule,
		log:   log,
		cache: make(map[string]bool),
	}
}

// IsExcluded reports whether label is exempt from measurement. A panic in a
// predicate rule propagates to the caller and nothing is cached.
func (e *exclusionEvaluator) IsExcluded(label string) bool {
	if e.rule.Kind == ExcludeKindNone {
		return false
	}

	e.mu.RLock()
	excluded, ok := e.cache[label]
	e.mu.RUnlock()
	if ok {
		if e.log.DebugEnabled() {
			e.log.Debug("exclusion decision", nil, map[string]interface{}{
				"path":     label,
				"excluded": excluded,
				"cached":   true,
			})
		}
		return excluded
	}

	v, _, _ := e.group.Do(label, func() (interface{}, error) {
		e.mu.RLock()
		cached, hit := e.cache[label]
		e.mu.RUnlock()
		if hit {
			return cached, nil
		}

		result := e.rule.matches(label)

		e.mu.Lock()
		e.cache[label] = result
		e.mu.Unlock()

		e.log.Debug("exclusion decision", nil, map[string]interface{}{
			"path":     label,
			"excluded": result,
			"rule":     e.rule.Kind.String(),
			"cached":   false,
		})
		return result, nil
	})
	return v.(bool)
}

// Len returns the number of cached decisions.
func (e *exclusionEvaluator) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
