package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	upstreamResultOk    = "ok"
	upstreamResultError = "error"
)

type Metrics struct {
	responseCounter  *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		responseCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chat_gate",
			Name:      "responses_total",
			Help:      "Number of responses by status class",
		}, []string{"status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chat_gate",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of webhook calls in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
	}
	registerer.MustRegister(m.responseCounter, m.upstreamDuration)
	return m
}

func (m *Metrics) UpdateStatusCounter(statusCode int) {
	m.responseCounter.WithLabelValues(StatusClass(statusCode)).Inc()
}

func (m *Metrics) UpdateUpstreamDuration(duration time.Duration, err error) {
	result := upstreamResultOk
	if err != nil {
		result = upstreamResultError
	}
	m.upstreamDuration.WithLabelValues(result).Observe(duration.Seconds())
}

func StatusClass(statusCode int) string {
	metricStatus := "5xx"
	switch {
	case statusCode >= 100 && statusCode < 200:
		metricStatus = "1xx"
	case statusCode >= 200 && statusCode < 300:
		metricStatus = "2xx"
	case statusCode >= 300 && statusCode < 400:
		metricStatus = "3xx"
	case statusCode >= 400 && statusCode < 500:
		metricStatus = "4xx"
	}
	return metricStatus
}
