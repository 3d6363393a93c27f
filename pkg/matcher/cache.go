// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "sync"

type cachedMatcher struct {
	matcher Matcher

	mu    sync.RWMutex
	cache map[string]bool
}

// WithCache memoizes the results of m per input. Constant matchers are returned as is.
// The cache is unbounded, so use it only for small input sets such as virtual server names.
func WithCache(m Matcher) Matcher {
	if _, ok := m.(constMatcher); ok {
		return m
	}
	return &cachedMatcher{matcher: m, cache: make(map[string]bool)}
}

func (m *cachedMatcher) Match(b []byte) bool { return m.MatchString(string(b)) }

func (m *cachedMatcher) MatchString(s string) bool {
	m.mu.RLock()
	result, ok := m.cache[s]
	m.mu.RUnlock()
	if ok {
		return result
	}

	result = m.matcher.MatchString(s)

	m.mu.Lock()
	m.cache[s] = result
	m.mu.Unlock()

	return result
}
