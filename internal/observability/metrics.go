package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the process-wide Prometheus collectors. All names carry the
// troov_ prefix.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	completionComputed *prometheus.CounterVec
	completionDuration prometheus.Histogram
	sectionReadFailed  *prometheus.CounterVec
	overridePersist    *prometheus.CounterVec
	trackersActive     prometheus.Gauge

	autosaveFlushes *prometheus.CounterVec

	deadlineCreated *prometheus.CounterVec
	realtimeDropped prometheus.Counter
	emailsSent      *prometheus.CounterVec
}

// M returns the shared metrics, registering them on first use.
func M() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_http_requests_total",
				Help: "HTTP requests by route, method and status class.",
			}, []string{"route", "method", "status"}),
			httpLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "troov_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			}, []string{"route", "method"}),
			httpInflight: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "troov_http_inflight_requests",
				Help: "HTTP requests currently being served.",
			}),

			completionComputed: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_completion_computations_total",
				Help: "Completion map computations by outcome (full or degraded).",
			}, []string{"outcome"}),
			completionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "troov_completion_duration_seconds",
				Help:    "Time to load and merge a completion map.",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			}),
			sectionReadFailed: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_section_read_failures_total",
				Help: "Section reads that failed and fell back to defaults.",
			}, []string{"section"}),
			overridePersist: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_override_writes_total",
				Help: "Completion override writes by result.",
			}, []string{"result"}),
			trackersActive: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "troov_completion_trackers",
				Help: "Live per-project completion trackers.",
			}),

			autosaveFlushes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_autosave_flushes_total",
				Help: "Debounced section writes by table and result.",
			}, []string{"table", "result"}),

			deadlineCreated: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_deadline_notifications_total",
				Help: "Deadline notifications created by kind.",
			}, []string{"kind"}),
			realtimeDropped: promauto.NewCounter(prometheus.CounterOpts{
				Name: "troov_realtime_dropped_total",
				Help: "Realtime messages dropped because a client buffer was full.",
			}),
			emailsSent: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "troov_emails_total",
				Help: "Outbound emails by category and result.",
			}, []string{"category", "result"}),
		}
	})
	return globalMetrics
}

func statusClass(status int) string {
	if status <= 0 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) HTTPStarted()  { m.httpInflight.Inc() }
func (m *Metrics) HTTPFinished() { m.httpInflight.Dec() }

func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, statusClass(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) ObserveCompletion(degraded bool, d time.Duration) {
	outcome := "full"
	if degraded {
		outcome = "degraded"
	}
	m.completionComputed.WithLabelValues(outcome).Inc()
	m.completionDuration.Observe(d.Seconds())
}

func (m *Metrics) SectionReadFailed(section string) {
	m.sectionReadFailed.WithLabelValues(section).Inc()
}

func (m *Metrics) OverrideWrite(err error) {
	m.overridePersist.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) SetTrackers(n int) { m.trackersActive.Set(float64(n)) }

func (m *Metrics) AutosaveFlush(table string, err error) {
	m.autosaveFlushes.WithLabelValues(table, result(err)).Inc()
}

func (m *Metrics) DeadlineNotification(kind string) {
	m.deadlineCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) RealtimeDropped() { m.realtimeDropped.Inc() }

func (m *Metrics) EmailSent(category string, err error) {
	m.emailsSent.WithLabelValues(category, result(err)).Inc()
}
