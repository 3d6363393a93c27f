// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := map[string]struct {
		raw     string
		escaped string
	}{
		"plain":           {raw: "serveradmin", escaped: "serveradmin"},
		"spaces":          {raw: "My TS3 Server", escaped: `My\sTS3\sServer`},
		"pipe and slash":  {raw: "a|b/c", escaped: `a\pb\/c`},
		"backslash":       {raw: `C:\path`, escaped: `C:\\path`},
		"control chars":   {raw: "x\ty\nz", escaped: `x\ty\nz`},
		"escaped literal": {raw: `\s`, escaped: `\\s`},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.escaped, Escape(test.raw))
			assert.Equal(t, test.raw, Unescape(test.escaped))
		})
	}
}

func TestUnescape_UnknownSequence(t *testing.T) {
	assert.Equal(t, `a\qb`, Unescape(`a\qb`))
}
