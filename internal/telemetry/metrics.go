package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// Metrics counts turns and errors per intent and outcome.
type Metrics struct {
	turns    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blendvoice",
			Name:      "turns_total",
			Help:      "Voice turns handled, by intent and outcome.",
		}, []string{"intent", "outcome"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blendvoice",
			Name:      "turn_errors_total",
			Help:      "Errors reported while handling turns, by intent and outcome.",
		}, []string{"intent", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blendvoice",
			Name:      "turn_duration_seconds",
			Help:      "Time spent handling a voice turn.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
	}
	for _, c := range []prometheus.Collector{m.turns, m.errors, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Capture(_ context.Context, e ports.Event) {
	switch e.Kind {
	case ports.EventTurn:
		m.turns.WithLabelValues(e.Intent, string(e.Outcome)).Inc()
		m.duration.WithLabelValues(e.Intent).Observe(e.Duration.Seconds())
	case ports.EventError:
		m.errors.WithLabelValues(e.Intent, string(e.Outcome)).Inc()
	}
}

var _ ports.Telemetry = (*Metrics)(nil)
