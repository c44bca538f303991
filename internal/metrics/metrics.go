// Package metrics provides Prometheus instrumentation for tinylog.
//
// Collectors live in a private [prometheus.Registry] so only tinylog series
// appear on the /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors updated by the logger.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsWritten  *prometheus.CounterVec
	WriteErrors     prometheus.Counter
	WebhookFailures prometheus.Counter
}

// New creates and registers all collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		RecordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tinylog_records_written_total",
			Help: "Total number of records appended to the log file.",
		}, []string{"label"}),

		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinylog_write_errors_total",
			Help: "Total number of writes that failed before or during the file append.",
		}),

		WebhookFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tinylog_webhook_failures_total",
			Help: "Total number of webhook notifications that could not be delivered.",
		}),
	}

	reg.MustRegister(m.RecordsWritten, m.WriteErrors, m.WebhookFailures)
	return m
}

// Handler returns an [http.Handler] that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RecordWritten counts one appended record for label.
func (m *Metrics) RecordWritten(label string) {
	m.RecordsWritten.WithLabelValues(label).Inc()
}

// RecordWriteError counts one failed write.
func (m *Metrics) RecordWriteError() {
	m.WriteErrors.Inc()
}

// RecordWebhookFailure counts one failed webhook notification.
func (m *Metrics) RecordWebhookFailure() {
	m.WebhookFailures.Inc()
}
