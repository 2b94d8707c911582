package host

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records served requests.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates request metrics and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	ret := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cmdbridge",
			Subsystem: "host",
			Name:      "requests_total",
			Help:      "Bridge requests served, by method and JSON-RPC error code (0 on success)",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cmdbridge",
			Subsystem: "host",
			Name:      "request_duration_seconds",
			Help:      "Bridge request serving time in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	registry.MustRegister(ret.requests, ret.duration)
	return ret
}

func (m *Metrics) observe(method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
