package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Probe metrics
	ProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_probes_total",
			Help: "Total number of health probes by result",
		},
		[]string{"result"},
	)

	ProbeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vigil_probe_duration_seconds",
			Help:    "Health probe duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ConsecutiveFailures = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vigil_consecutive_failures",
			Help: "Current count of consecutive failed probes",
		},
	)

	// Remediation metrics
	RemediationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_remediations_total",
			Help: "Total number of remediation runs triggered by threshold crossings",
		},
	)

	ContainerRestartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_container_restarts_total",
			Help: "Total number of per-container restart attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		ProbesTotal,
		ProbeDuration,
		ConsecutiveFailures,
		RemediationsTotal,
		ContainerRestartsTotal,
	)
}

// RecordProbe records the outcome and duration of one probe
func RecordProbe(healthy bool, duration time.Duration) {
	result := "failure"
	if healthy {
		result = "success"
	}
	ProbesTotal.WithLabelValues(result).Inc()
	ProbeDuration.Observe(duration.Seconds())
}

// Handler returns the prometheus scrape handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts a blocking HTTP listener exposing /metrics on addr
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
