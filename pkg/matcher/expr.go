// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
)

// SimpleExpr selects a value when it matches any of Includes (or Includes is empty)
// and none of Excludes. Every item uses the Parse syntax.
type SimpleExpr struct {
	Includes []string `yaml:"includes,omitempty" json:"includes"`
	Excludes []string `yaml:"excludes,omitempty" json:"excludes"`
}

var ErrEmptyExpr = errors.New("empty expression")

func (s SimpleExpr) Empty() bool {
	return len(s.Includes) == 0 && len(s.Excludes) == 0
}

func (s SimpleExpr) Parse() (Matcher, error) {
	if s.Empty() {
		return nil, ErrEmptyExpr
	}

	includes := TRUE()
	if len(s.Includes) > 0 {
		m, err := parseAny(s.Includes)
		if err != nil {
			return nil, err
		}
		includes = m
	}

	excludes, err := parseAny(s.Excludes)
	if err != nil {
		return nil, err
	}

	return And(includes, Not(excludes)), nil
}

func parseAny(items []string) (Matcher, error) {
	m := FALSE()
	for _, item := range items {
		v, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("parse matcher '%s': %w", item, err)
		}
		m = Or(m, v)
	}
	return m, nil
}
