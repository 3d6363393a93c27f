// SPDX-License-Identifier: GPL-3.0-or-later

package socket

import "time"

// Processor function passed to the Socket.Command function.
// It is passed by the caller to process a command's response
// line by line. Returning false stops reading, a non-nil error
// stops reading and is returned by Command.
type Processor func([]byte) (bool, error)

// Client is the interface that wraps the basic socket client operations
// and hides the implementation details from the users.
//
// Connect should prepare the connection.
//
// Disconnect should stop any in-flight connections.
//
// Command should send the actual data to the wire and pass
// any results to the processor function.
type Client interface {
	Connect() error
	Disconnect() error
	Command(command string, process Processor) error
}

// Config holds the TCP address (host:port, optionally prefixed with tcp://)
// and the timeouts of a Socket.
type Config struct {
	Address        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}
