// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
	"strings"
)

// Matcher reports whether a value is selected.
type Matcher interface {
	Match(b []byte) bool
	MatchString(s string) bool
}

const (
	fmtString = '='
	fmtGlob   = '*'
	fmtRegExp = '~'
)

var errEmptyPattern = errors.New("empty pattern")

// Must is like Parse but panics on error.
func Must(m Matcher, err error) Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

// Parse builds a Matcher from its short syntax:
//
//	= exact        exact string match
//	* glob         shell glob (path.Match)
//	~ regexp       regular expression
//
// A pattern without a recognised prefix is a glob.
func Parse(line string) (Matcher, error) {
	if line == "" {
		return nil, errEmptyPattern
	}

	if len(line) >= 2 && line[1] == ' ' {
		pattern := line[2:]
		switch line[0] {
		case fmtString:
			return NewStringMatcher(pattern, true, true)
		case fmtGlob:
			return NewGlobMatcher(pattern)
		case fmtRegExp:
			return NewRegExpMatcher(pattern)
		}
	}

	if strings.TrimSpace(line) == "" {
		return nil, errEmptyPattern
	}
	m, err := NewGlobMatcher(line)
	if err != nil {
		return nil, fmt.Errorf("glob '%s': %w", line, err)
	}
	return m, nil
}
