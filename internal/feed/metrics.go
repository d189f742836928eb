package feed

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for load cycles.
type Metrics struct {
	CyclesTotal *prometheus.CounterVec
	Duration    prometheus.Histogram
	Records     prometheus.Gauge
	LastSuccess prometheus.Gauge
}

// NewMetrics creates and registers the feed metrics with the default registry.
// Registration happens once per process; later calls return the same set.
//
// Metrics:
//   - feed_load_cycles_total{outcome} - cycles by loaded, failed, discarded, rejected
//   - feed_load_duration_seconds - fetch-and-parse duration
//   - feed_records - records currently served
//   - feed_last_success_timestamp_seconds - unix time of the last applied load
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			CyclesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "feed_load_cycles_total",
					Help: "Total number of project load cycles by outcome",
				},
				[]string{"outcome"},
			),

			Duration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "feed_load_duration_seconds",
					Help:    "Duration of project load cycles in seconds",
					Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
				},
			),

			Records: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "feed_records",
					Help: "Number of project records currently served",
				},
			),

			LastSuccess: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "feed_last_success_timestamp_seconds",
					Help: "Unix timestamp of the last successful project load",
				},
			),
		}
	})

	return globalMetrics
}

// RecordCycle records one finished cycle.
func (m *Metrics) RecordCycle(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(outcome).Inc()
	m.Duration.Observe(d.Seconds())
}

// RecordRejected counts a refresh turned away because one was running.
func (m *Metrics) RecordRejected() {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues("rejected").Inc()
}

// SetRecords updates the served-records gauge.
func (m *Metrics) SetRecords(n int) {
	if m == nil {
		return
	}
	m.Records.Set(float64(n))
}

// MarkSuccess stamps the last-success gauge.
func (m *Metrics) MarkSuccess(t time.Time) {
	if m == nil {
		return
	}
	m.LastSuccess.Set(float64(t.Unix()))
}
