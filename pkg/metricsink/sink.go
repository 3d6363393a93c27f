// SPDX-License-Identifier: GPL-3.0-or-later

package metricsink

// Sink receives gauge samples. Implementations must be safe for concurrent use.
type Sink interface {
	// Upsert sets the value of the series identified by name and labels,
	// creating it when it does not exist yet.
	Upsert(name string, labels map[string]string, value float64)
}

// Sample is one (metric name, label set, value) unit.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Desc declares a gauge: its exported name, help text and label names in order.
type Desc struct {
	Name   string
	Help   string
	Labels []string
}

// Func adapts an ordinary function to the Sink interface.
type Func func(name string, labels map[string]string, value float64)

func (f Func) Upsert(name string, labels map[string]string, value float64) { f(name, labels, value) }
