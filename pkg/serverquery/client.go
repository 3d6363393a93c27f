// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/netdata/netdata/go/ts3exporter/pkg/socket"
)

const (
	ProtocolTCP = "tcp"
	ProtocolSSH = "ssh"

	defaultTimeout = time.Second * 10
)

// Config describes how to reach one ServerQuery interface.
type Config struct {
	// Address is host:port.
	Address  string
	Protocol string
	// Username and Password are used by the SSH handshake. Over raw TCP they are
	// sent with the login command instead.
	Username string
	Password string
	// KnownHosts is an optional known_hosts file used to verify SSH host keys.
	KnownHosts string
	// Timeout bounds the dial and every single command round-trip.
	Timeout time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// lineConn is a line oriented command transport.
type lineConn interface {
	Command(command string, process socket.Processor) error
	Read(process socket.Processor) error
	Disconnect() error
}

// VirtualServer is one entry of the serverlist response.
type VirtualServer struct {
	ID     string
	Port   string
	Status string
	Name   string
}

// Client is a ServerQuery session. It is not safe for concurrent use:
// the protocol is stateful (use, then query) and strictly request/response.
type Client struct {
	cfg     Config
	conn    lineConn
	version Row
}

// Dial opens a session and consumes the greeting. Errors wrap ErrConnect
// (or ErrAuth for a rejected SSH handshake).
func Dial(cfg Config) (*Client, error) {
	var conn lineConn
	var err error

	switch strings.ToLower(cfg.Protocol) {
	case "", ProtocolTCP:
		conn, err = dialTCP(cfg)
	case ProtocolSSH:
		conn, err = dialSSH(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown protocol '%s'", ErrConnect, cfg.Protocol)
	}
	if err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg, conn: conn}

	// The greeting has no terminator, so a harmless command is used to
	// drain it: everything up to its status line is discarded.
	rows, err := c.execLines("version")
	if err != nil {
		_ = conn.Disconnect()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if len(rows) > 0 {
		c.version = rows[len(rows)-1]
	}

	return c, nil
}

func dialTCP(cfg Config) (lineConn, error) {
	sock := socket.New(socket.Config{
		Address:        cfg.Address,
		ConnectTimeout: cfg.timeout(),
		ReadTimeout:    cfg.timeout(),
		WriteTimeout:   cfg.timeout(),
	})

	if err := sock.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	var header string
	err := sock.Read(func(line []byte) (bool, error) {
		header = string(line)
		return false, nil
	})
	if err == nil && !strings.HasPrefix(header, "TS3") {
		err = fmt.Errorf("unexpected greeting '%s'", header)
	}
	if err != nil {
		_ = sock.Disconnect()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	return sock, nil
}

// Version returns the row of the version command read while connecting (version, build, platform).
func (c *Client) Version() Row { return c.version }

// Login authenticates a raw TCP session. SSH sessions are authenticated
// by the handshake, for them Login is a no-op.
func (c *Client) Login(username, password string) error {
	if strings.EqualFold(c.cfg.Protocol, ProtocolSSH) {
		return nil
	}

	_, err := c.Exec(fmt.Sprintf("login %s %s", Escape(username), Escape(password)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return nil
}

// ListVirtualServers runs serverlist. Entries without an id are dropped.
func (c *Client) ListVirtualServers() ([]VirtualServer, error) {
	rows, err := c.Exec("serverlist")
	if err != nil {
		return nil, err
	}

	var servers []VirtualServer
	for _, row := range rows {
		id := row["virtualserver_id"]
		if id == "" {
			continue
		}
		servers = append(servers, VirtualServer{
			ID:     id,
			Port:   row["virtualserver_port"],
			Status: row["virtualserver_status"],
			Name:   row["virtualserver_name"],
		})
	}
	return servers, nil
}

// Use selects the virtual server subsequent commands apply to.
func (c *Client) Use(id string) error {
	_, err := c.Exec("use sid=" + Escape(id))
	return err
}

// Query runs cmd with the given option flags, e.g. Query("clientlist", "uid", "away")
// sends "clientlist -uid -away".
func (c *Client) Query(cmd string, options ...string) ([]Row, error) {
	var sb strings.Builder
	sb.WriteString(cmd)
	for _, opt := range options {
		sb.WriteString(" -")
		sb.WriteString(strings.TrimPrefix(opt, "-"))
	}
	return c.Exec(sb.String())
}

// Exec sends a raw command line and returns the parsed rows.
// A non-zero status is returned as *Error, except "database empty result set"
// which is reported as no rows.
func (c *Client) Exec(command string) ([]Row, error) {
	rows, err := c.execLines(command)
	if err != nil {
		var qe *Error
		if errors.As(err, &qe) && qe.ID == idDatabaseEmptyResultSet {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func (c *Client) execLines(command string) ([]Row, error) {
	if c.conn == nil {
		return nil, socket.ErrNotConnected
	}

	var rows []Row
	var status *Error

	err := c.conn.Command(command+"\n", func(b []byte) (bool, error) {
		line := string(b)
		if isErrorLine(line) {
			status = parseErrorLine(line)
			return false, nil
		}
		rows = append(rows, parseRows(line)...)
		return true, nil
	})
	if err != nil {
		// a late reply would be read as the answer to the next command
		_ = c.conn.Disconnect()
		c.conn = nil
		return nil, fmt.Errorf("command '%s': %w", commandName(command), err)
	}
	if status != nil {
		return nil, fmt.Errorf("command '%s': %w", commandName(command), status)
	}

	return rows, nil
}

// Connected reports whether the session can still be used. A transport error
// (timeout, reset, EOF) ends the session and the client must be dialed again.
func (c *Client) Connected() bool { return c.conn != nil }

// Close sends quit and closes the transport. It is safe to call more than once.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}

	_ = c.conn.Command("quit\n", func([]byte) (bool, error) { return false, nil })
	err := c.conn.Disconnect()
	c.conn = nil

	return err
}

// commandName keeps credentials out of error messages.
func commandName(command string) string {
	name, _, _ := strings.Cut(command, " ")
	return name
}
