// Package metrics exposes the outcome of archive classifications to
// Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raoulx24/rdb-retention/internal/retention"
)

const namespace = "rdb_retention"

// Collector holds the classification metrics. The gauges describe the most
// recent successful run.
type Collector struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	records    *prometheus.GaugeVec
	keptByRule *prometheus.GaugeVec
	lastRun    prometheus.Gauge
}

// New registers the collectors on registry, or on a fresh registry if nil.
func New(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Archive classifications by result.",
		}, []string{"result"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Backups per mark in the last classification.",
		}, []string{"mark"}),
		keptByRule: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kept_by_rule",
			Help:      "Backups kept per retention rule in the last classification.",
		}, []string{"rule"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last successful classification.",
		}),
	}
	registry.MustRegister(c.runs, c.records, c.keptByRule, c.lastRun)
	return c
}

// ObserveRun records a successful classification finished at now.
func (c *Collector) ObserveRun(sum retention.Summary, now time.Time) {
	c.runs.WithLabelValues("ok").Inc()
	c.records.WithLabelValues(retention.Keep.String()).Set(float64(sum.Kept))
	c.records.WithLabelValues(retention.Remove.String()).Set(float64(sum.Removed))

	c.keptByRule.Reset()
	for rule, n := range sum.ByRule {
		c.keptByRule.WithLabelValues(string(rule)).Set(float64(n))
	}
	c.lastRun.Set(float64(now.Unix()))
}

// ObserveError counts a failed classification.
func (c *Collector) ObserveError() {
	c.runs.WithLabelValues("error").Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
