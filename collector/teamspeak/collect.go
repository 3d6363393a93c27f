// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/multierr"
)

const unknownVirtualServerName = "Unknown"

func (c *Collector) collect(context.Context) error {
	if err := c.establishConn(); err != nil {
		return err
	}
	defer c.disconnect()

	servers, err := c.conn.listVirtualServers()
	if err != nil {
		return fmt.Errorf("list virtual servers: %w", err)
	}

	var errs error
	var total, failed int

	for _, vs := range servers {
		if c.vsMatcher != nil && !c.vsMatcher.MatchString(vs.Name) {
			c.Debugf("virtual server %s ('%s') skipped by selector", vs.ID, vs.Name)
			continue
		}
		total++

		if err := c.ensureConn(); err != nil {
			failed++
			errs = multierr.Append(errs, fmt.Errorf("virtual server %s: %w", vs.ID, err))
			continue
		}

		if err := c.collectVirtualServer(vs.ID); err != nil {
			c.Errorf("virtual server %s: %v", vs.ID, err)
			failed++
			errs = multierr.Append(errs, fmt.Errorf("virtual server %s: %w", vs.ID, err))
		}
	}

	if total > 0 && failed == total {
		return fmt.Errorf("all %d virtual servers failed: %w", total, errs)
	}

	return nil
}

// ensureConn replaces a session that was ended by a transport error. The rest of
// the virtual servers would otherwise be queried on a closed or desynced stream.
func (c *Collector) ensureConn() error {
	if c.conn != nil && c.conn.connected() {
		return nil
	}

	c.Warningf("session to '%s' lost, reconnecting", c.address())
	c.disconnect()

	return c.establishConn()
}

func (c *Collector) collectVirtualServer(id string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			c.Debugf("virtual server %s: %s", id, debug.Stack())
		}
	}()

	if err := c.conn.use(id); err != nil {
		return fmt.Errorf("select: %w", err)
	}

	info, err := c.conn.query("serverinfo")
	if err != nil {
		return fmt.Errorf("serverinfo: %w", err)
	}
	if len(info) == 0 {
		return errors.New("serverinfo: empty response")
	}

	vsName := info[0].Get("virtualserver_name", unknownVirtualServerName)

	MapServerInfo(c.Name, vsName, info[0], c.sink)

	clients, err := c.conn.query("clientlist", clientListOptions...)
	if err != nil {
		return fmt.Errorf("clientlist: %w", err)
	}

	for _, row := range clients {
		MapClientRow(c.Name, vsName, row, c.sink)
	}

	return nil
}

func (c *Collector) establishConn() error {
	conn, err := c.newConn(c.Config)
	if err != nil {
		return fmt.Errorf("connect to '%s': %w", c.address(), err)
	}

	if err := conn.login(c.Username, c.Password); err != nil {
		_ = conn.close()
		return fmt.Errorf("login to '%s' as '%s': %w", c.address(), c.Username, err)
	}

	c.conn = conn

	return nil
}
