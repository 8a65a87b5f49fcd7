package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TripAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_assignments_total",
			Help: "Driver assignment attempts by result.",
		},
		[]string{"result"},
	)

	ResetCodesIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reset_codes_issued_total",
			Help: "Password reset codes issued by delivery channel.",
		},
		[]string{"channel"},
	)

	ResetDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reset_deliveries_total",
			Help: "Password reset code deliveries by channel and result.",
		},
		[]string{"channel", "result"},
	)
)

var registerOnce sync.Once

// MustRegister registers the collectors with the default registry. Calling it
// more than once is a no-op.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			TripAssignmentsTotal,
			ResetCodesIssuedTotal,
			ResetDeliveriesTotal,
		)
	})
}
