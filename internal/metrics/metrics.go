package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"qfrbench/internal/evaluation"
)

const namespace = "qfrbench"

// Recorder counts sweep events on its own registry. It implements
// evaluation.Observer.
type Recorder struct {
	evaluation.NopObserver

	registry           *prometheus.Registry
	attempts           *prometheus.CounterVec
	generationFailures *prometheus.CounterVec
	mismatches         prometheus.Counter
	constructionTime   *prometheus.HistogramVec
	planned            prometheus.Gauge
}

// NewRecorder registers the sweep collectors on a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Planned construction attempts by label and outcome.",
		}, []string{"label", "outcome"}),
		generationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Benchmark/width pairs whose circuit could not be generated.",
		}, []string{"benchmark"}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "equality_mismatches_total",
			Help:      "Pairs whose parameter sets produced distinct functional matrices.",
		}),
		constructionTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "construction_seconds",
			Help:      "Wall time of successful constructions.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"label"}),
		planned: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planned_attempts",
			Help:      "Attempts planned by the current sweep.",
		}),
	}
}

// Registry returns the registry holding the sweep collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) OnRunStart(_ string, total int) {
	r.planned.Set(float64(total))
}

func (r *Recorder) OnGenerationFailure(failure evaluation.GenerationFailure) {
	r.generationFailures.WithLabelValues(failure.Benchmark).Inc()
}

func (r *Recorder) OnOutcome(outcome evaluation.Outcome) {
	r.attempts.WithLabelValues(outcome.Label, string(outcome.Kind)).Inc()
	if outcome.Kind == evaluation.OutcomeOK {
		r.constructionTime.WithLabelValues(outcome.Label).Observe(outcome.Duration.Seconds())
	}
}

func (r *Recorder) OnMismatch(evaluation.EqualityMismatch) {
	r.mismatches.Inc()
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
