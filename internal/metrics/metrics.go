package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webmail_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"method", "path", "status"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webmail_gmail_call_duration_seconds",
			Help:    "Gmail API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"operation", "status"},
	)

	FanOutResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webmail_fanout_results_total",
			Help: "Per-item outcomes of concurrent upstream fan-outs",
		},
		[]string{"strategy", "result"},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webmail_messages_sent_total",
			Help: "Outbound messages handed to the Gmail API",
		},
		[]string{"status", "multipart"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordUpstreamCall(operation, status string, duration time.Duration) {
	UpstreamCallDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func RecordFanOutResult(strategy string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	FanOutResults.WithLabelValues(strategy, result).Inc()
}

func RecordMessageSent(ok, multipart bool) {
	status := "success"
	if !ok {
		status = "failure"
	}
	kind := "false"
	if multipart {
		kind = "true"
	}
	MessagesSent.WithLabelValues(status, kind).Inc()
}
