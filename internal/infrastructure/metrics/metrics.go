// Package metrics expone contadores Prometheus del pipeline de reportes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implementa report.Metrics con un registro propio (no el global).
type Recorder struct {
	registry  *prometheus.Registry
	reports   *prometheus.CounterVec
	records   *prometheus.CounterVec
	rows      prometheus.Histogram
	durations prometheus.Histogram
}

// NewRecorder registra los colectores del servicio y los del runtime de Go.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reportes procesados por resultado (ok, schema_error, invalid_document, malformed_row, error).",
		}, []string{"outcome"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_records_extracted_total",
			Help:      "Filas de venta extraídas por canal.",
		}, []string{"channel"}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Filas de producto por reporte generado.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Duración del pipeline extracción → agregación → escritura.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(
		r.reports, r.records, r.rows, r.durations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry para exponer en /metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler sirve el registro en formato de exposición Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveRecords suma filas extraídas de un canal.
func (r *Recorder) ObserveRecords(channel string, n int) {
	r.records.WithLabelValues(channel).Add(float64(n))
}

// ObserveReport registra el resultado de una generación.
func (r *Recorder) ObserveReport(outcome string, rows int, elapsed time.Duration) {
	r.reports.WithLabelValues(outcome).Inc()
	r.durations.Observe(elapsed.Seconds())
	if outcome == "ok" {
		r.rows.Observe(float64(rows))
	}
}
