package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecomputeMetrics records the outcome of bulk price recompute runs.
type RecomputeMetrics struct {
	duration *prometheus.HistogramVec
	updated  *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewRecomputeMetrics registers the recompute metrics on the provided registerer.
func NewRecomputeMetrics(reg prometheus.Registerer) *RecomputeMetrics {
	if reg == nil {
		return &RecomputeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_recompute_duration_seconds",
		Help:    "Duration of bulk price recompute runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	updated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_recompute_updated_total",
		Help: "Products whose discounted price was rewritten during recompute.",
	}, []string{"trigger"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_recompute_failed_total",
		Help: "Products skipped or errored during recompute.",
	}, []string{"trigger"})
	reg.MustRegister(duration, updated, failed)
	return &RecomputeMetrics{
		duration: duration,
		updated:  updated,
		failed:   failed,
	}
}

// ObserveDuration records the duration for the named trigger.
func (r *RecomputeMetrics) ObserveDuration(trigger string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// AddUpdated adds to the updated counter for the named trigger.
func (r *RecomputeMetrics) AddUpdated(trigger string, n int) {
	if r == nil || r.updated == nil || n <= 0 {
		return
	}
	r.updated.WithLabelValues(normalizeLabel(trigger)).Add(float64(n))
}

// AddFailed adds to the failed counter for the named trigger.
func (r *RecomputeMetrics) AddFailed(trigger string, n int) {
	if r == nil || r.failed == nil || n <= 0 {
		return
	}
	r.failed.WithLabelValues(normalizeLabel(trigger)).Add(float64(n))
}

func normalizeLabel(trigger string) string {
	if trigger == "" {
		return "unknown"
	}
	return trigger
}
