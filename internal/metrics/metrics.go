// Package metrics exposes Prometheus instruments for the scan cycle.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "announcer"

const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

type Metrics struct {
	registry *prometheus.Registry

	CyclesTotal        prometheus.Counter
	CycleDuration      prometheus.Histogram
	UnitScansTotal     *prometheus.CounterVec
	NewAnnouncements   *prometheus.CounterVec
	DeliveriesTotal    *prometheus.CounterVec
	SweepRemovedTotal  prometheus.Counter
	LastCycleTimestamp prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CyclesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Periodic scan cycles started.",
		}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one periodic scan cycle.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		UnitScansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_scans_total",
			Help:      "Unit scans by result (ok, failed, skipped).",
		}, []string{"result"}),
		NewAnnouncements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "new_announcements_total",
			Help:      "Unsent announcements found per unit.",
		}, []string{"unit"}),
		DeliveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Message deliveries by result (ok, failed).",
		}, []string{"result"}),
		SweepRemovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_removed_total",
			Help:      "Dedup records removed by the retention sweep.",
		}),
		LastCycleTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time the last periodic cycle finished.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveCycle(seconds float64, finishedUnix float64) {
	if m == nil {
		return
	}

	m.CyclesTotal.Inc()
	m.CycleDuration.Observe(seconds)
	m.LastCycleTimestamp.Set(finishedUnix)
}

func (m *Metrics) UnitScanned(result string) {
	if m == nil {
		return
	}

	m.UnitScansTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) AnnouncementsFound(unit string, n int) {
	if m == nil || n <= 0 {
		return
	}

	m.NewAnnouncements.WithLabelValues(unit).Add(float64(n))
}

func (m *Metrics) Delivered(err error) {
	if m == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultFailed
	}

	m.DeliveriesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Swept(removed int64) {
	if m == nil || removed <= 0 {
		return
	}

	m.SweepRemovedTotal.Add(float64(removed))
}
