// SPDX-License-Identifier: GPL-3.0-or-later

package socket

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"time"
)

const defaultTimeout = time.Second

var ErrNotConnected = errors.New("socket: not connected")

// New returns a socket client for the given config.
// The connection is kept between commands, and so is the read buffer:
// lines that arrive ahead of a command (banners, notifications) are not lost.
func New(cfg Config) *Socket {
	return &Socket{Config: cfg}
}

// Socket is the implementation of a line oriented socket client.
type Socket struct {
	Config

	conn net.Conn
	rd   *bufio.Reader
}

// Connect dials the TCP address. A "tcp://" prefix is accepted.
// If the address is a domain name it will also perform the DNS resolution.
func (s *Socket) Connect() error {
	d := net.Dialer{Timeout: orDefault(s.ConnectTimeout)}

	conn, err := d.Dial("tcp", strings.TrimPrefix(s.Address, "tcp://"))
	if err != nil {
		return err
	}

	s.conn = conn
	s.rd = bufio.NewReader(conn)

	return nil
}

// Disconnect closes the connection.
// Any in-flight commands will be cancelled and return errors.
func (s *Socket) Disconnect() (err error) {
	if s.conn != nil {
		err = s.conn.Close()
		s.conn = nil
		s.rd = nil
	}
	return err
}

// Command writes the command string to the connection and passes the
// response line by line (without the trailing CR/LF) to the process function.
func (s *Socket) Command(command string, process Processor) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	if err := s.write(command); err != nil {
		return err
	}

	return s.Read(process)
}

// Read passes incoming lines to the process function without writing anything first.
func (s *Socket) Read(process Processor) error {
	if process == nil {
		return errors.New("socket: process func is nil")
	}
	if s.conn == nil {
		return ErrNotConnected
	}

	if err := s.conn.SetReadDeadline(time.Now().Add(orDefault(s.ReadTimeout))); err != nil {
		return err
	}

	return ReadLines(s.rd, process)
}

// ReadLines reads newline terminated lines from rd and passes them, stripped of
// CR/LF, to process until it returns false or an error. Empty lines are skipped.
func ReadLines(rd *bufio.Reader, process Processor) error {
	for {
		line, err := rd.ReadBytes('\n')

		// "\n\r" separated protocols leave empty fragments between lines
		if line = bytes.Trim(line, "\r\n"); len(line) > 0 {
			next, perr := process(line)
			if perr != nil {
				return perr
			}
			if !next {
				return nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
}

func (s *Socket) write(command string) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(orDefault(s.WriteTimeout))); err != nil {
		return err
	}

	_, err := io.WriteString(s.conn, command)

	return err
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
