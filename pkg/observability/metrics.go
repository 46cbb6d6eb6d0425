package observability

import (
	"context"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/prometheus/client_golang/prometheus"
)

// PollMetrics exposes Prometheus collectors for poll invocations.
type PollMetrics struct {
	attempts *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
	active   *prometheus.GaugeVec
}

// NewPollMetrics creates the poll collectors and registers them with reg.
// Metric names are prefixed with namespace when it is not empty.
func NewPollMetrics(reg prometheus.Registerer, namespace string) (*PollMetrics, error) {
	m := &PollMetrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_attempts_total",
				Help:      "Total number of source invocations made by polls",
			},
			[]string{"poll"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_finished_total",
				Help:      "Total number of finished polls by outcome",
			},
			[]string{"poll", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "poll_attempt_duration_seconds",
				Help:      "Duration of source invocations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"poll"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "poll_active",
				Help:      "Number of polls currently running",
			},
			[]string{"poll"},
		),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.finished, m.duration, m.active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns poll hooks recording into the collectors.
func (m *PollMetrics) Hooks() poll.Hooks {
	return poll.Hooks{
		OnAttempt: func(_ context.Context, e *poll.Event) {
			if e.Attempt == 1 {
				m.active.WithLabelValues(e.Name).Inc()
			}
			m.attempts.WithLabelValues(e.Name).Inc()
		},
		OnResult: func(_ context.Context, e *poll.Event) {
			m.duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
		},
		OnFinish: func(_ context.Context, e *poll.Event) {
			if e.Attempt > 0 {
				m.active.WithLabelValues(e.Name).Dec()
			}
			m.finished.WithLabelValues(e.Name, string(e.Outcome)).Inc()
		},
	}
}
