// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"github.com/netdata/netdata/go/ts3exporter/pkg/serverquery"
)

type queryConn interface {
	login(username, password string) error
	listVirtualServers() ([]serverquery.VirtualServer, error)
	use(id string) error
	query(cmd string, options ...string) ([]serverquery.Row, error)
	connected() bool
	close() error
}

func newQueryConn(cfg Config) (queryConn, error) {
	client, err := serverquery.Dial(serverquery.Config{
		Address:    cfg.address(),
		Protocol:   cfg.Protocol,
		Username:   cfg.Username,
		Password:   cfg.Password,
		KnownHosts: cfg.KnownHosts,
		Timeout:    cfg.Timeout.Duration(),
	})
	if err != nil {
		return nil, err
	}
	return &serverQueryConn{client: client}, nil
}

type serverQueryConn struct {
	client *serverquery.Client
}

func (c *serverQueryConn) login(username, password string) error {
	return c.client.Login(username, password)
}

func (c *serverQueryConn) listVirtualServers() ([]serverquery.VirtualServer, error) {
	return c.client.ListVirtualServers()
}

func (c *serverQueryConn) use(id string) error {
	return c.client.Use(id)
}

func (c *serverQueryConn) query(cmd string, options ...string) ([]serverquery.Row, error) {
	return c.client.Query(cmd, options...)
}

func (c *serverQueryConn) connected() bool {
	return c.client.Connected()
}

func (c *serverQueryConn) close() error {
	return c.client.Close()
}
