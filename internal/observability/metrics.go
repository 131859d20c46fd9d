package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerwire",
			Subsystem: "frame",
			Name:      "messages_total",
			Help:      "Messages moved across framed connections.",
		},
		[]string{"direction", "command"},
	)
	frameBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerwire",
			Subsystem: "frame",
			Name:      "bytes_total",
			Help:      "Message bytes moved across framed connections.",
		},
		[]string{"direction"},
	)
	frameRejects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerwire",
			Subsystem: "frame",
			Name:      "rejected_total",
			Help:      "Inbound messages rejected before decoding.",
		},
		[]string{"reason"},
	)
	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerwire",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Client requests by operation and outcome.",
		},
		[]string{"operation", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledgerwire",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Round trip time from request write to reply decode.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)
	resultErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerwire",
			Subsystem: "client",
			Name:      "result_errors_total",
			Help:      "Per-record failures reported in create replies.",
		},
		[]string{"operation"},
	)
)

const (
	DirectionRead  = "read"
	DirectionWrite = "write"

	StatusOK    = "ok"
	StatusError = "error"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(frames, frameBytes, frameRejects, requests, requestDuration, resultErrors)
	})
}

func RecordFrame(direction, command string, size int) {
	RegisterMetrics()
	frames.WithLabelValues(direction, command).Inc()
	frameBytes.WithLabelValues(direction).Add(float64(size))
}

func RecordFrameRejected(reason string) {
	RegisterMetrics()
	frameRejects.WithLabelValues(reason).Inc()
}

func RecordRequest(operation string, err error, duration time.Duration) {
	RegisterMetrics()
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	requests.WithLabelValues(operation, status).Inc()
	requestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func RecordResultErrors(operation string, n int) {
	if n == 0 {
		return
	}
	RegisterMetrics()
	resultErrors.WithLabelValues(operation).Add(float64(n))
}
