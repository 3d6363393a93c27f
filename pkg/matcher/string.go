// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "strings"

type stringMatcher struct {
	s         string
	startWith bool
	endWith   bool
}

// NewStringMatcher matches s as a substring, anchored at the start and/or end as requested.
func NewStringMatcher(s string, startWith, endWith bool) (Matcher, error) {
	return stringMatcher{s: s, startWith: startWith, endWith: endWith}, nil
}

func (m stringMatcher) Match(b []byte) bool { return m.MatchString(string(b)) }

func (m stringMatcher) MatchString(line string) bool {
	switch {
	case m.startWith && m.endWith:
		return line == m.s
	case m.startWith:
		return strings.HasPrefix(line, m.s)
	case m.endWith:
		return strings.HasSuffix(line, m.s)
	default:
		return strings.Contains(line, m.s)
	}
}
