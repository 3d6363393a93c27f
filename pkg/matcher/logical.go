// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

type (
	constMatcher bool
	andMatcher   struct{ lhs, rhs Matcher }
	orMatcher    struct{ lhs, rhs Matcher }
	negMatcher   struct{ m Matcher }
)

// TRUE matches everything.
func TRUE() Matcher { return constMatcher(true) }

// FALSE matches nothing.
func FALSE() Matcher { return constMatcher(false) }

// Not inverts m.
func Not(m Matcher) Matcher {
	if c, ok := m.(constMatcher); ok {
		return !c
	}
	if n, ok := m.(negMatcher); ok {
		return n.m
	}
	return negMatcher{m}
}

// And matches when every operand matches. Constant operands are folded away.
func And(lhs, rhs Matcher, others ...Matcher) Matcher {
	m := and2(lhs, rhs)
	for _, o := range others {
		m = and2(m, o)
	}
	return m
}

// Or matches when any operand matches. Constant operands are folded away.
func Or(lhs, rhs Matcher, others ...Matcher) Matcher {
	m := or2(lhs, rhs)
	for _, o := range others {
		m = or2(m, o)
	}
	return m
}

func and2(lhs, rhs Matcher) Matcher {
	if c, ok := lhs.(constMatcher); ok {
		if c {
			return rhs
		}
		return FALSE()
	}
	if c, ok := rhs.(constMatcher); ok {
		if c {
			return lhs
		}
		return FALSE()
	}
	return andMatcher{lhs, rhs}
}

func or2(lhs, rhs Matcher) Matcher {
	if c, ok := lhs.(constMatcher); ok {
		if c {
			return TRUE()
		}
		return rhs
	}
	if c, ok := rhs.(constMatcher); ok {
		if c {
			return TRUE()
		}
		return lhs
	}
	return orMatcher{lhs, rhs}
}

func (m constMatcher) Match([]byte) bool       { return bool(m) }
func (m constMatcher) MatchString(string) bool { return bool(m) }

func (m andMatcher) Match(b []byte) bool       { return m.lhs.Match(b) && m.rhs.Match(b) }
func (m andMatcher) MatchString(s string) bool { return m.lhs.MatchString(s) && m.rhs.MatchString(s) }

func (m orMatcher) Match(b []byte) bool       { return m.lhs.Match(b) || m.rhs.Match(b) }
func (m orMatcher) MatchString(s string) bool { return m.lhs.MatchString(s) || m.rhs.MatchString(s) }

func (m negMatcher) Match(b []byte) bool       { return !m.m.Match(b) }
func (m negMatcher) MatchString(s string) bool { return !m.m.MatchString(s) }
