// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/netdata/netdata/go/ts3exporter/collector/teamspeak"
	"github.com/netdata/netdata/go/ts3exporter/pkg/confopt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config.yaml"

	defaultMetricsPort    = 8000
	defaultReadInterval   = confopt.Duration(time.Second * 60)
	defaultEnvServerName  = "Default Server"
	defaultEnvServerUser  = teamspeak.AdminNickname
	defaultEnvServerProto = "tcp"
)

// Config is the exporter configuration, read once at startup.
type Config struct {
	MetricsPort  int                `yaml:"metrics_port"`
	ReadInterval confopt.Duration   `yaml:"read_interval"`
	Servers      []teamspeak.Config `yaml:"servers"`

	// Source is where the configuration was read from, for logging.
	Source string `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		MetricsPort:  defaultMetricsPort,
		ReadInterval: defaultReadInterval,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("source '%s', metrics_port '%d', read_interval '%s', servers '%d'",
		c.Source, c.MetricsPort, c.ReadInterval, len(c.Servers))
}

// LoadConfig reads the YAML file at path. When the file does not exist the
// configuration is taken from the environment instead.
func LoadConfig(path string) (Config, error) {
	cfg, err := loadConfigFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = loadConfigEnv(os.LookupEnv)
	}
	if err != nil {
		return Config{}, err
	}

	for i := range cfg.Servers {
		cfg.Servers[i].ApplyDefaults()
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration (%s): %w", cfg.Source, err)
	}

	return cfg, nil
}

func loadConfigFile(path string) (Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse '%s': %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

type lookupEnvFunc func(key string) (string, bool)

func loadConfigEnv(lookup lookupEnvFunc) (Config, error) {
	cfg := defaultConfig()
	cfg.Source = "environment"

	env := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	var err error

	if v := env("METRICS_PORT", ""); v != "" {
		port, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("METRICS_PORT: %w", perr))
		}
		cfg.MetricsPort = port
	}
	if v := env("READ_INTERVAL", ""); v != "" {
		d, perr := confopt.ParseDuration(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("READ_INTERVAL: %w", perr))
		}
		cfg.ReadInterval = d
	}

	host := env("TEAMSPEAK_HOST", "")
	if host == "" {
		return cfg, err
	}

	srv := teamspeak.Config{
		Name:     env("TEAMSPEAK_SERVER_NAME", defaultEnvServerName),
		Host:     host,
		Username: env("TEAMSPEAK_USERNAME", defaultEnvServerUser),
		Password: env("TEAMSPEAK_PASSWORD", ""),
		Protocol: env("TEAMSPEAK_PROTOCOL", defaultEnvServerProto),
	}
	if v := env("TEAMSPEAK_PORT", ""); v != "" {
		port, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("TEAMSPEAK_PORT: %w", perr))
		}
		srv.Port = port
	}
	cfg.Servers = append(cfg.Servers, srv)

	return cfg, err
}

func (c Config) validate() error {
	var err error

	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		err = multierr.Append(err, fmt.Errorf("invalid 'metrics_port' %d", c.MetricsPort))
	}
	if c.ReadInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("'read_interval' must be positive, got %s", c.ReadInterval))
	}
	for i, srv := range c.Servers {
		if verr := srv.Validate(); verr != nil {
			for _, e := range multierr.Errors(verr) {
				err = multierr.Append(err, fmt.Errorf("server #%d ('%s'): %w", i+1, srv.Name, e))
			}
		}
	}

	return err
}
