package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups Prometheus collectors for API-call observability.
type Metrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
}

// NewMetrics registers and returns API-call metrics collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoicing_api_requests_total",
			Help:      "Total number of sales-invoicing API calls issued.",
		}, []string{"method", "op", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoicing_api_request_duration_ms",
			Help:      "Sales-invoicing API call latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "op"}),
	}
	reg.MustRegister(m.ReqTotal, m.ReqDur)
	return m
}

func (m *Metrics) observe(method, op string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, op, strconv.Itoa(status)).Inc()
	m.ReqDur.WithLabelValues(method, op).Observe(float64(duration) / float64(time.Millisecond))
}
