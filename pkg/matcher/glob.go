// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"path"
	"strings"
)

type globMatcher string

// NewGlobMatcher matches with path.Match semantics. A pattern without wildcards
// becomes an exact string match.
func NewGlobMatcher(expr string) (Matcher, error) {
	if !strings.ContainsAny(expr, `*?[\`) {
		return NewStringMatcher(expr, true, true)
	}
	if expr == "*" {
		return TRUE(), nil
	}
	if _, err := path.Match(expr, ""); err != nil {
		return nil, err
	}
	return globMatcher(expr), nil
}

func (m globMatcher) Match(b []byte) bool { return m.MatchString(string(b)) }

func (m globMatcher) MatchString(s string) bool {
	ok, _ := path.Match(string(m), s)
	return ok
}
