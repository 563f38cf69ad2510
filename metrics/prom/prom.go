// Package prom exports cache counters as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/sim"
)

// Hook observes cache accesses and keeps Prometheus counters and gauges in
// sync with them.
type Hook struct {
	registry *prometheus.Registry

	accesses *prometheus.CounterVec
	evicts   prometheus.Counter
	resident prometheus.Gauge
}

// New constructs a Hook that registers its metrics with a fresh registry. All
// metrics are placed under the ns namespace and carry constLabels, which may
// be nil.
func New(ns string, constLabels prometheus.Labels) *Hook {
	h := &Hook{
		registry: prometheus.NewRegistry(),
		accesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "cache",
				Name:        "accesses_total",
				Help:        "Cache accesses by result",
				ConstLabels: constLabels,
			},
			[]string{"result"},
		),
		evicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "cache",
			Name:        "evictions_total",
			Help:        "Lines evicted by the LRU policy",
			ConstLabels: constLabels,
		}),
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   "cache",
			Name:        "resident_lines",
			Help:        "Number of valid lines",
			ConstLabels: constLabels,
		}),
	}

	h.registry.MustRegister(h.accesses, h.evicts, h.resident)

	return h
}

// Func updates the metrics after a cache access.
func (h *Hook) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	rec, ok := ctx.Item.(cache.AccessRecord)
	if !ok {
		return
	}

	h.accesses.WithLabelValues(result(rec.Outcome)).Inc()

	switch rec.Outcome {
	case cache.MissNoEvict:
		h.resident.Inc()
	case cache.MissWithEvict:
		h.evicts.Inc()
	}
}

// WriteTextfile writes the metrics in the text exposition format, suitable
// for the node exporter textfile collector.
func (h *Hook) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

// result maps an Outcome to a stable label value.
func result(o cache.Outcome) string {
	if o.IsHit() {
		return "hit"
	}

	return "miss"
}

var _ sim.Hook = (*Hook)(nil)
