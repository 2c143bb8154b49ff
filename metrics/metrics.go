// SPDX-License-Identifier: EPL-2.0

// Package metrics exports engine counters in the Prometheus format and
// serves them, together with a status snapshot, over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/victorzappi/ar-audioengine/graph"
	"github.com/victorzappi/ar-audioengine/stream"
)

const namespace = "audioengine"

// Metrics holds the engine's collectors on a private registry. It observes
// both the graph session and the streaming loop.
type Metrics struct {
	registry *prometheus.Registry

	periods        prometheus.Counter
	periodDuration prometheus.Histogram
	writeErrors    prometheus.Counter
	controlOps     *prometheus.CounterVec
}

var (
	_ graph.Observer  = (*Metrics)(nil)
	_ stream.Observer = (*Metrics)(nil)
)

// New registers the engine collectors plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		periods: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "periods_total",
			Help:      "Periods rendered, converted and written",
		}),

		periodDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "period_duration_seconds",
			Help:      "Time from render start to write completion",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),

		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "write_errors_total",
			Help:      "PCM writes that failed",
		}),

		controlOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "control_ops_total",
			Help:      "Graph control operations by outcome",
		}, []string{"op", "status"}),
	}

	m.registry.MustRegister(
		m.periods,
		m.periodDuration,
		m.writeErrors,
		m.controlOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObservePeriod(d time.Duration) {
	m.periods.Inc()
	m.periodDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveWriteError(error) {
	m.writeErrors.Inc()
}

func (m *Metrics) ObserveOp(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.controlOps.WithLabelValues(op, status).Inc()
}
