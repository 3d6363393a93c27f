// SPDX-License-Identifier: GPL-3.0-or-later

package metricsink

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a Sink backed by client_golang gauge vectors. The set of gauges is
// fixed when the Registry is created, samples for undeclared names are dropped.
type Registry struct {
	gauges map[string]*gauge
}

type gauge struct {
	vec    *prometheus.GaugeVec
	labels []string
}

// NewRegistry creates a gauge vector for every desc and registers it with reg.
func NewRegistry(reg prometheus.Registerer, descs ...Desc) (*Registry, error) {
	r := &Registry{gauges: make(map[string]*gauge, len(descs))}

	for _, d := range descs {
		if _, ok := r.gauges[d.Name]; ok {
			return nil, fmt.Errorf("metricsink: duplicate gauge '%s'", d.Name)
		}

		help := d.Help
		if help == "" {
			help = d.Name
		}
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: d.Name, Help: help}, d.Labels)

		if err := reg.Register(vec); err != nil {
			return nil, fmt.Errorf("metricsink: register '%s': %w", d.Name, err)
		}

		r.gauges[d.Name] = &gauge{vec: vec, labels: d.Labels}
	}

	return r, nil
}

// Upsert implements Sink. Labels not declared for the gauge are ignored,
// declared labels missing from the set are exported as "".
func (r *Registry) Upsert(name string, labels map[string]string, value float64) {
	g, ok := r.gauges[name]
	if !ok {
		return
	}

	values := make([]string, len(g.labels))
	for i, l := range g.labels {
		values[i] = labels[l]
	}

	g.vec.WithLabelValues(values...).Set(value)
}

// Has reports whether name was declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.gauges[name]
	return ok
}
