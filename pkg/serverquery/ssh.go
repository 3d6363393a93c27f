// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/netdata/netdata/go/ts3exporter/pkg/socket"
)

// sshConn runs the ServerQuery shell over an SSH session (server port 10022 by default).
type sshConn struct {
	conn    net.Conn
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	timeout time.Duration
}

func dialSSH(cfg Config) (lineConn, error) {
	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHosts != "" {
		cb, err := knownhosts.New(cfg.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("%w: known hosts: %w", ErrConnect, err)
		}
		hostKeyCallback = cb
	}

	conn, err := net.DialTimeout("tcp", cfg.Address, cfg.timeout())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	// the handshake and opening the shell are bounded by the same timeout as every command
	_ = conn.SetDeadline(time.Now().Add(cfg.timeout()))

	cc, chans, reqs, err := ssh.NewClientConn(conn, cfg.Address, &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.timeout(),
	})
	if err != nil {
		_ = conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	c := &sshConn{
		conn:    conn,
		client:  ssh.NewClient(cc, chans, reqs),
		timeout: cfg.timeout(),
	}

	if err := c.openShell(); err != nil {
		_ = c.Disconnect()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	_ = conn.SetDeadline(time.Time{})

	return c, nil
}

func (c *sshConn) openShell() error {
	sess, err := c.client.NewSession()
	if err != nil {
		return err
	}
	c.session = sess

	if c.stdin, err = sess.StdinPipe(); err != nil {
		return err
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		return err
	}
	c.stdout = bufio.NewReader(stdout)

	return sess.Shell()
}

func (c *sshConn) Command(command string, process socket.Processor) error {
	if c.stdin == nil {
		return socket.ErrNotConnected
	}

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	defer func() { _ = c.conn.SetDeadline(time.Time{}) }()

	if _, err := io.WriteString(c.stdin, command); err != nil {
		return err
	}

	return socket.ReadLines(c.stdout, process)
}

func (c *sshConn) Read(process socket.Processor) error {
	if c.stdout == nil {
		return socket.ErrNotConnected
	}

	_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	defer func() { _ = c.conn.SetDeadline(time.Time{}) }()

	return socket.ReadLines(c.stdout, process)
}

func (c *sshConn) Disconnect() error {
	if c.session != nil {
		_ = c.session.Close()
		c.session = nil
	}
	c.stdin = nil
	c.stdout = nil

	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}
