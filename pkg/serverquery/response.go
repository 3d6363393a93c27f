// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"strconv"
	"strings"
)

// Row is one record of a command response: unescaped parameter names mapped to unescaped values.
// Flags without a value map to the empty string.
type Row map[string]string

// Get returns the value for key or def when the key is absent.
func (r Row) Get(key, def string) string {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}

// parseRows parses one response data line. Records are separated by '|',
// parameters by ' ' and every parameter is either "key=value" or a bare "key".
func parseRows(line string) []Row {
	if line == "" {
		return nil
	}

	var rows []Row
	for _, rec := range strings.Split(line, "|") {
		rows = append(rows, parseRow(rec))
	}
	return rows
}

func parseRow(rec string) Row {
	row := make(Row)
	for _, param := range strings.Split(rec, " ") {
		if param == "" {
			continue
		}
		key, value, _ := strings.Cut(param, "=")
		row[Unescape(key)] = Unescape(value)
	}
	return row
}

const errorLinePrefix = "error "

func isErrorLine(line string) bool {
	return strings.HasPrefix(line, errorLinePrefix)
}

// parseErrorLine parses the "error id=N msg=..." status line that terminates every response.
// It returns nil for id=0.
func parseErrorLine(line string) *Error {
	row := parseRow(strings.TrimPrefix(line, errorLinePrefix))

	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return &Error{ID: -1, Msg: "malformed status line: " + line}
	}
	if id == 0 {
		return nil
	}

	return &Error{ID: id, Msg: row["msg"], ExtraMsg: row["extra_msg"]}
}
