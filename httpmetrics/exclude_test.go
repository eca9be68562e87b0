package httpmetrics

import (
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
)

func TestExclusionEvaluator_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rule        ExcludeRule
		excluded    []string
		notExcluded []string
	}{
		{
			name:        "none",
			rule:        ExcludeRule{},
			notExcluded: []string{"/test", ""},
		},
		{
			name:        "empty string",
			rule:        ExcludeList(""),
			notExcluded: []string{"/testWhenEmptyString"},
		},
		{
			name:        "single",
			rule:        ExcludeList("/test"),
			excluded:    []string{"/test", "/test"},
			notExcluded: []string{"/test2", "/test2"},
		},
		{
			name:        "empty list",
			rule:        ExcludeList(),
			notExcluded: []string{"/testWhenEmptyArray"},
		},
		{
			name:        "list",
			rule:        ExcludeList("/test1", "/test2"),
			excluded:    []string{"/test1", "/test2"},
			notExcluded: []string{"/test3"},
		},
		{
			name:        "pattern",
			rule:        ExcludePattern(regexp.MustCompile(`^/test`)),
			excluded:    []string{"/test", "/test/something"},
			notExcluded: []string{"/atest", "/bleh"},
		},
		{
			name:        "predicate",
			rule:        ExcludePredicate(func(p string) bool { return len(p) != 5 }),
			excluded:    []string{"/test2", "/"},
			notExcluded: []string{"/test", "/1234"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newExclusionEvaluator(tt.rule, logger.NewNopLoggerClient())
			for _, p := range tt.excluded {
				assert.True(t, e.IsExcluded(p), "path %q", p)
			}
			for _, p := range tt.notExcluded {
				assert.False(t, e.IsExcluded(p), "path %q", p)
			}
		})
	}
}

func TestExclusionEvaluator_MemoizesPredicate(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var exclude atomic.Bool
	exclude.Store(true)

	e := newExclusionEvaluator(ExcludePredicate(func(string) bool {
		calls.Add(1)
		return exclude.Load()
	}), logger.NewNopLoggerClient())

	assert.True(t, e.IsExcluded("/flag"))
	exclude.Store(false)

	// The predicate now answers false, the cached decision stays.
	assert.True(t, e.IsExcluded("/flag"))
	assert.False(t, e.IsExcluded("/other"))
	assert.False(t, e.IsExcluded("/other"))

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, e.Len())
}

func TestExclusionEvaluator_NoRuleSkipsCache(t *testing.T) {
	t.Parallel()

	e := newExclusionEvaluator(ExcludeRule{}, logger.NewNopLoggerClient())
	assert.False(t, e.IsExcluded("/a"))
	assert.Equal(t, 0, e.Len())
}

func TestExclusionEvaluator_ConcurrentFirstEvaluation(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	e := newExclusionEvaluator(ExcludePredicate(func(string) bool {
		calls.Add(1)
		<-release
		return true
	}), logger.NewNopLoggerClient())

	const workers = 16
	var started, done sync.WaitGroup
	started.Add(workers)
	done.Add(workers)
	results := make([]bool, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i] = e.IsExcluded("/same")
		}(i)
	}
	started.Wait()
	close(release)
	done.Wait()

	for _, r := range results {
		assert.True(t, r)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestExclusionEvaluator_PredicatePanicPropagates(t *testing.T) {
	t.Parallel()

	e := newExclusionEvaluator(ExcludePredicate(func(string) bool {
		panic("predicate failed")
	}), logger.NewNopLoggerClient())

	require.Panics(t, func() { e.IsExcluded("/boom") })
	assert.Equal(t, 0, e.Len())
}
