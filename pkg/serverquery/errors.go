// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"errors"
	"fmt"
)

var (
	// ErrConnect marks failures to reach a ServerQuery interface: dial, handshake or banner.
	ErrConnect = errors.New("serverquery: connect failed")
	// ErrAuth marks rejected credentials.
	ErrAuth = errors.New("serverquery: authentication failed")
)

// https://yat.qa/resources/server-error-codes/
const idDatabaseEmptyResultSet = 1281

// Error is a non-zero status returned by the server for a command.
type Error struct {
	ID       int
	Msg      string
	ExtraMsg string
}

func (e *Error) Error() string {
	if e.ExtraMsg != "" {
		return fmt.Sprintf("serverquery: error id=%d msg=%s (%s)", e.ID, e.Msg, e.ExtraMsg)
	}
	return fmt.Sprintf("serverquery: error id=%d msg=%s", e.ID, e.Msg)
}

// IsQueryError reports whether err carries a server returned status.
func IsQueryError(err error) bool {
	var qe *Error
	return errors.As(err, &qe)
}
