package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	OutcomeGranted  = "granted"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// UnboxMetrics counts unboxing outcomes. A nil value is a no-op.
type UnboxMetrics struct {
	outcomes *prometheus.CounterVec
	retries  prometheus.Counter
	depleted prometheus.Counter
}

func NewUnboxMetrics(reg prometheus.Registerer) *UnboxMetrics {
	if reg == nil {
		return &UnboxMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unbox_total",
		Help: "Unbox attempts by outcome and granted rarity.",
	}, []string{"outcome", "rarity"})
	retries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unbox_retries_total",
		Help: "Unbox attempts restarted after a concurrent stock change.",
	})
	depleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "box_items_depleted_total",
		Help: "Box items whose remaining quantity reached zero.",
	})
	reg.MustRegister(outcomes, retries, depleted)
	return &UnboxMetrics{outcomes: outcomes, retries: retries, depleted: depleted}
}

// ObserveOutcome records one finished unbox call. rarity is empty unless an
// item was granted.
func (m *UnboxMetrics) ObserveOutcome(outcome, rarity string) {
	if m == nil || m.outcomes == nil {
		return
	}
	if rarity == "" {
		rarity = "none"
	}
	m.outcomes.WithLabelValues(outcome, rarity).Inc()
}

func (m *UnboxMetrics) IncRetry() {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.Inc()
}

func (m *UnboxMetrics) IncDepleted() {
	if m == nil || m.depleted == nil {
		return
	}
	m.depleted.Inc()
}

// JobMetrics records scheduled job runs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful scheduled job runs.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed scheduled job runs.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &JobMetrics{duration: duration, success: success, failure: failure}
}

func (j *JobMetrics) ObserveDuration(job string, d time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(jobLabel(job)).Observe(d.Seconds())
}

func (j *JobMetrics) IncSuccess(job string) {
	if j == nil || j.success == nil {
		return
	}
	j.success.WithLabelValues(jobLabel(job)).Inc()
}

func (j *JobMetrics) IncFailure(job string) {
	if j == nil || j.failure == nil {
		return
	}
	j.failure.WithLabelValues(jobLabel(job)).Inc()
}

func jobLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
