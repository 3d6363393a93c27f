// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "regexp"

// NewRegExpMatcher compiles expr. Expressions with no metacharacters other than
// the ^ and $ anchors are turned into plain string matchers.
func NewRegExpMatcher(expr string) (Matcher, error) {
	switch expr {
	case "", "^", "$":
		return TRUE(), nil
	case "^$", "$^":
		return NewStringMatcher("", true, true)
	}

	body := expr
	startWith := body[0] == '^'
	if startWith {
		body = body[1:]
	}
	endWith := len(body) > 0 && body[len(body)-1] == '$' && !escaped(body, len(body)-1)
	if endWith {
		body = body[:len(body)-1]
	}

	literal, ok := unquoteMeta(body)
	if !ok {
		return regexp.Compile(expr)
	}
	return NewStringMatcher(literal, startWith, endWith)
}

// unquoteMeta returns s with escaped metacharacters unescaped. It fails if s
// holds an unescaped metacharacter or an escape with a special meaning (\d, \s, ...).
func unquoteMeta(s string) (string, bool) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\':
			if i == len(s)-1 || !isRegExpMeta(s[i+1]) {
				return "", false
			}
			out = append(out, s[i+1])
			i++
		case isRegExpMeta(ch):
			return "", false
		default:
			out = append(out, ch)
		}
	}
	return string(out), true
}

func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func isRegExpMeta(b byte) bool {
	switch b {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
		return true
	default:
		return false
	}
}
