// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/netdata/netdata/go/ts3exporter/agent/module"
	"github.com/netdata/netdata/go/ts3exporter/collector/teamspeak"
	"github.com/netdata/netdata/go/ts3exporter/logger"
	"github.com/netdata/netdata/go/ts3exporter/pkg/metricsink"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

const (
	metricCollectionDuration = "ts3_exporter_collection_duration_seconds"
	metricCollectionSuccess  = "ts3_exporter_collection_success"
)

func selfDescs() []metricsink.Desc {
	return []metricsink.Desc{
		{
			Name:   metricCollectionDuration,
			Help:   "Duration of the last collection from a TeamSpeak server.",
			Labels: []string{"server_name"},
		},
		{
			Name:   metricCollectionSuccess,
			Help:   "Whether the last collection from a TeamSpeak server succeeded.",
			Labels: []string{"server_name"},
		},
	}
}

// Agent represents orchestrator. It runs one collection per target every interval.
type Agent struct {
	*logger.Logger

	interval time.Duration
	jobs     []*job
	stats    metricsink.Sink

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

type job struct {
	name string
	log  *logger.Logger
	mod  module.Module
}

// New creates an Agent with one teamspeak collector per configured server.
// Server samples go to sink, the agent's own metrics are registered with reg.
func New(cfg Config, sink metricsink.Sink, reg prometheus.Registerer) (*Agent, error) {
	stats, err := metricsink.NewRegistry(reg, selfDescs()...)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		Logger: logger.New().With(
			slog.String("component", "agent"),
		),
		interval: cfg.ReadInterval.Duration(),
		stats:    stats,
		now:      time.Now,
		sleep:    sleepContext,
	}

	for _, srv := range cfg.Servers {
		collr := teamspeak.New().WithSink(sink)
		collr.Config = srv

		if err := a.addJob(srv.Name, collr); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Agent) addJob(name string, mod module.Module) error {
	log := logger.New().With(
		slog.String("component", "collector"),
		slog.String("server", name),
	)
	mod.GetBase().Logger = log

	if err := mod.Init(context.Background()); err != nil {
		return fmt.Errorf("server '%s': init: %w", name, err)
	}

	a.jobs = append(a.jobs, &job{name: name, log: log, mod: mod})

	return nil
}

// Run collects from every target each interval until ctx is cancelled.
// Cancellation is only observed between cycles.
func (a *Agent) Run(ctx context.Context) {
	a.Infof("instance is started, %d server(s), read interval %s", len(a.jobs), a.interval)
	defer func() { a.Info("instance is stopped") }()

	if len(a.jobs) == 0 {
		a.Warning("no TeamSpeak servers configured")
	}

	defer func() {
		for _, j := range a.jobs {
			j.mod.Cleanup(context.Background())
		}
	}()

	for {
		start := a.now()

		a.runCycle(ctx)

		elapsed := a.now().Sub(start)
		wait := sleepDuration(a.interval, elapsed)
		if wait == 0 {
			a.Warningf("collection took %s, longer than the read interval %s", elapsed, a.interval)
		}

		if !a.sleep(ctx, wait) {
			return
		}
	}
}

func (a *Agent) runCycle(ctx context.Context) {
	id := uuid.NewString()
	a.Debugf("cycle %s: collecting from %d server(s)", id, len(a.jobs))

	var wg conc.WaitGroup
	for _, j := range a.jobs {
		wg.Go(func() { a.runJob(ctx, id, j) })
	}
	wg.Wait()
}

func (a *Agent) runJob(ctx context.Context, cycleID string, j *job) {
	log := j.log.With(slog.String("cycle_id", cycleID))
	j.mod.GetBase().Logger = log

	start := a.now()

	var err error
	var pc panics.Catcher
	pc.Try(func() { err = j.mod.Collect(ctx) })

	if r := pc.Recovered(); r != nil {
		err = r.AsError()
		log.Errorf("PANIC: %v", r.Value)
		if logger.Level.Enabled(slog.LevelDebug) {
			log.Errorf("STACK: %s", r.Stack)
		}
		j.mod.Cleanup(ctx)
	} else if err != nil {
		log.Errorf("collection failed: %v", err)
	}

	labels := map[string]string{"server_name": j.name}
	a.stats.Upsert(metricCollectionDuration, labels, a.now().Sub(start).Seconds())
	a.stats.Upsert(metricCollectionSuccess, labels, boolToFloat(err == nil))
}

// sleepDuration is how long to wait before the next cycle. Overruns start it immediately.
func sleepDuration(interval, elapsed time.Duration) time.Duration {
	return max(0, interval-elapsed)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
