package httpmetrics

import "sync"

// PathLimit bounds the set of distinct path labels allowed into the
// restify_path_count metric. Labels are admitted first come, first served
// and never evicted.
type PathLimit struct {
	maxPaths int

	mu    sync.RWMutex
	paths map[string]struct{}
}

// NewPathLimit returns a PathLimit admitting at most maxPaths labels.
// Zero means unbounded.
func NewPathLimit(maxPaths int) *PathLimit {
	return &PathLimit{
		maxPaths: maxPaths,
		paths:    make(map[string]struct{}),
	}
}

// TryAdmit reports whether label may be counted. An already admitted label
// is always accepted; a new one only while the ceiling is not reached.
func (p *PathLimit) TryAdmit(label string) bool {
	if p.maxPaths == 0 {
		return true
	}

	p.mu.RLock()
	if _, exists := p.paths[label]; exists {
		p.mu.RUnlock()
		return true
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := p.paths[label]; exists {
		return true
	}

	if len(p.paths) >= p.maxPaths {
		return false
	}

	p.paths[label] = struct{}{}
	return true
}

// Count returns the number of admitted labels. It stays 0 when the limit is
// unbounded, since nothing needs tracking then.
func (p *PathLimit) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.paths)
}
