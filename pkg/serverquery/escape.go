// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import "strings"

// https://yat.qa/resources/server-query-escaping/
var (
	escaper = strings.NewReplacer(
		`\`, `\\`,
		`/`, `\/`,
		" ", `\s`,
		"|", `\p`,
		"\a", `\a`,
		"\b", `\b`,
		"\f", `\f`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
		"\v", `\v`,
	)
	unescaper = strings.NewReplacer(
		`\\`, `\`,
		`\/`, `/`,
		`\s`, " ",
		`\p`, "|",
		`\a`, "\a",
		`\b`, "\b",
		`\f`, "\f",
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\v`, "\v",
	)
)

// Escape encodes s for use as a ServerQuery parameter value.
func Escape(s string) string { return escaper.Replace(s) }

// Unescape decodes a ServerQuery parameter value.
func Unescape(s string) string { return unescaper.Replace(s) }
