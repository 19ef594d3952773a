package transport

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestStatusResponse = "response"
	requestStatusFailure  = "failure"
)

type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

func makeMetrics() metrics {
	return metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedloader_requests",
			Help: "Feed requests by status",
		}, []string{"status"}),

		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedloader_request_duration",
			Help:    "Feed request duration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

var _ prometheus.Collector = &metrics{}

func (m *metrics) Describe(descs chan<- *prometheus.Desc) {
	m.requests.Describe(descs)
	m.requestDuration.Describe(descs)
}

func (m *metrics) Collect(metrics chan<- prometheus.Metric) {
	m.requests.Collect(metrics)
	m.requestDuration.Collect(metrics)
}
