// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/netdata/netdata/go/ts3exporter/pkg/matcher"
)

const (
	protocolTCP = "tcp"
	protocolSSH = "ssh"
)

// ApplyDefaults fills every unset field with its default. The port default depends on the protocol.
func (c *Config) ApplyDefaults() {
	c.Protocol = strings.ToLower(strings.TrimSpace(c.Protocol))

	if c.Name == "" {
		c.Name = defaultServerName
	}
	if c.Protocol == "" {
		c.Protocol = protocolTCP
	}
	if c.Port == 0 {
		c.Port = defaultPortTCP
		if c.Protocol == protocolSSH {
			c.Port = defaultPortSSH
		}
	}
	if c.Username == "" {
		c.Username = AdminNickname
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate reports every problem found in the config, not only the first one.
func (c Config) Validate() error {
	var err error

	if c.Host == "" {
		err = multierr.Append(err, errors.New("'host' not set"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid 'port' %d", c.Port))
	}
	switch c.Protocol {
	case protocolTCP, protocolSSH:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown 'protocol' '%s' (want tcp or ssh)", c.Protocol))
	}
	if c.KnownHosts != "" && c.Protocol != protocolSSH {
		err = multierr.Append(err, errors.New("'known_hosts' is only used with the ssh protocol"))
	}
	if !c.VirtualServerSelector.Empty() {
		if _, perr := c.VirtualServerSelector.Parse(); perr != nil {
			err = multierr.Append(err, fmt.Errorf("invalid 'vserver_selector': %v", perr))
		}
	}

	return err
}

func (c *Collector) initVirtualServerMatcher() (matcher.Matcher, error) {
	if c.VirtualServerSelector.Empty() {
		return matcher.TRUE(), nil
	}
	m, err := c.VirtualServerSelector.Parse()
	if err != nil {
		return nil, fmt.Errorf("invalid 'vserver_selector': %v", err)
	}
	return matcher.WithCache(m), nil
}
