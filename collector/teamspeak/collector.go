// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/netdata/netdata/go/ts3exporter/agent/module"
	"github.com/netdata/netdata/go/ts3exporter/pkg/confopt"
	"github.com/netdata/netdata/go/ts3exporter/pkg/matcher"
	"github.com/netdata/netdata/go/ts3exporter/pkg/metricsink"
)

const (
	defaultServerName = "Unknown Server"
	defaultPortTCP    = 10011
	defaultPortSSH    = 10022
	defaultTimeout    = confopt.Duration(time.Second * 10)
)

func New() *Collector {
	return &Collector{
		Config: Config{
			Name:     defaultServerName,
			Host:     "127.0.0.1",
			Username: AdminNickname,
			Protocol: protocolTCP,
			Timeout:  defaultTimeout,
		},
		newConn: newQueryConn,
	}
}

type Config struct {
	Name       string           `yaml:"name" json:"name"`
	Host       string           `yaml:"host" json:"host"`
	Port       int              `yaml:"port,omitempty" json:"port"`
	Username   string           `yaml:"username,omitempty" json:"username"`
	Password   string           `yaml:"password,omitempty" json:"password"`
	Protocol   string           `yaml:"protocol,omitempty" json:"protocol"`
	KnownHosts string           `yaml:"known_hosts,omitempty" json:"known_hosts"`
	Timeout    confopt.Duration `yaml:"timeout,omitempty" json:"timeout"`
	// VirtualServerSelector filters virtual servers by name. Empty selects all of them.
	VirtualServerSelector matcher.SimpleExpr `yaml:"vserver_selector,omitempty" json:"vserver_selector"`
}

func (c Config) address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type Collector struct {
	module.Base
	Config `yaml:",inline" json:""`

	sink      metricsink.Sink
	vsMatcher matcher.Matcher

	newConn func(Config) (queryConn, error)
	conn    queryConn
}

// WithSink sets where samples are written. It must be called before Init.
func (c *Collector) WithSink(sink metricsink.Sink) *Collector {
	c.sink = sink
	return c
}

func (c *Collector) Configuration() any {
	return c.Config
}

func (c *Collector) Init(context.Context) error {
	c.Config.ApplyDefaults()

	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("config validation: %v", err)
	}
	if c.sink == nil {
		return errors.New("metrics sink not set")
	}

	if c.Protocol == protocolSSH && c.KnownHosts == "" {
		c.Warningf("'known_hosts' not set, the ssh host key of '%s' will not be verified", c.address())
	}

	m, err := c.initVirtualServerMatcher()
	if err != nil {
		return err
	}
	c.vsMatcher = m

	return nil
}

func (c *Collector) Collect(ctx context.Context) error {
	return c.collect(ctx)
}

func (c *Collector) Cleanup(context.Context) {
	c.disconnect()
}

func (c *Collector) disconnect() {
	if c.conn == nil {
		return
	}
	if err := c.conn.close(); err != nil {
		c.Warningf("error on disconnect: %v", err)
	}
	c.conn = nil
}
