// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/netdata/netdata/go/ts3exporter/agent"
	"github.com/netdata/netdata/go/ts3exporter/collector/teamspeak"
	"github.com/netdata/netdata/go/ts3exporter/logger"
	"github.com/netdata/netdata/go/ts3exporter/pkg/buildinfo"
	"github.com/netdata/netdata/go/ts3exporter/pkg/cli"
	"github.com/netdata/netdata/go/ts3exporter/pkg/metricsink"
)

const envLogLevel = "TS3_EXPORTER_LOG_LEVEL"

func init() {
	version.Version = buildinfo.Version
	version.Revision = buildinfo.Revision
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Println(version.Print(buildinfo.Name))
		return
	}

	if lvl := os.Getenv(envLogLevel); lvl != "" {
		if !logger.Level.SetByName(lvl) {
			logger.Warningf("unknown %s '%s', ignored", envLogLevel, lvl)
		}
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	if err := run(opts); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(opts *cli.Option) error {
	log := logger.New().With(slog.String("component", "main"))
	log.Infof("starting %s: %s", buildinfo.Name, buildinfo.Info())

	cfg, err := agent.LoadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	log.Infof("using config: %s", cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		versioncollector.NewCollector(buildinfo.Name),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sink, err := metricsink.NewRegistry(reg, teamspeak.Descs()...)
	if err != nil {
		return err
	}

	a, err := agent.New(cfg, sink, reg)
	if err != nil {
		return err
	}

	web := agent.NewWebServer(cfg.MetricsPort, reg)
	if err := web.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := web.Shutdown(shutdownCtx); err != nil {
		log.Warningf("metrics server shutdown: %v", err)
	}

	return nil
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args[1:])
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}
