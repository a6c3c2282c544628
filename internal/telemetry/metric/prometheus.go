package metric

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "medqueue"

// Session operation outcomes besides the error kinds.
const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped" // no token, no round trip
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	SessionOps      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with the application, Go runtime and
// process collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		SessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Session operations by outcome",
		}, []string{"operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "status"}),
	}

	r.registry.MustRegister(
		r.SessionOps,
		r.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registerer exposes the registry for components that add their own metrics.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the registry for reading.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveSession counts one session operation.
func (r *Registry) ObserveSession(operation, outcome string) {
	r.SessionOps.WithLabelValues(operation, outcome).Inc()
}

// ObserveRequest records one API round trip. status 0 means no response.
func (r *Registry) ObserveRequest(method string, status int, elapsed time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	r.RequestDuration.WithLabelValues(method, label).Observe(elapsed.Seconds())
}

// WriteText writes every gathered family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
