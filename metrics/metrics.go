// Package metrics exports query-session statistics as Prometheus collectors.
//
// A Metrics value implements rpq.Recorder: hand it to rpq.WithRecorder and
// every finished session updates the collectors. The CLI writes the registry
// to a text file with prometheus.WriteToTextfile.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/wrpq/rpq"
)

// ErrNilRegisterer indicates New was called without a registerer.
var ErrNilRegisterer = errors.New("metrics: registerer is nil")

const namespace = "wrpq"

// Phase label values.
const (
	PhasePreprocessing  = "preprocessing"
	PhaseSearch         = "search"
	PhasePostprocessing = "postprocessing"
)

// Metrics holds the session collectors.
type Metrics struct {
	sessions     *prometheus.CounterVec
	incomplete   *prometheus.CounterVec
	iterations   prometheus.Histogram
	runs         prometheus.Counter
	answers      *prometheus.GaugeVec
	productNodes prometheus.Gauge
	productEdges prometheus.Gauge
	phase        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	m := &Metrics{
		// sessions counts evaluated sessions.
		// Labels: mode
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "total",
			Help:      "Query sessions evaluated",
		}, []string{"mode"}),

		// incomplete counts sessions that hit the iteration cap.
		// Labels: mode
		incomplete: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "possibly_incomplete_total",
			Help:      "Query sessions whose iteration counter reached the cap",
		}, []string{"mode"}),

		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "iterations",
			Help:      "Search iterations per session",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),

		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Single-source search runs",
		}),

		// answers is the answer count of the last session per mode.
		// Labels: mode
		answers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "answers",
			Help:      "Answers returned by the last session",
		}, []string{"mode"}),

		productNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "product",
			Name:      "nodes",
			Help:      "Product automaton nodes of the last session",
		}),

		productEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "product",
			Name:      "edges",
			Help:      "Product automaton edges of the last session",
		}),

		// phase measures the session stages.
		// Labels: phase (preprocessing, search, postprocessing)
		phase: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "phase_duration_seconds",
			Help:      "Duration of session stages in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"phase"}),
	}

	for _, c := range []prometheus.Collector{
		m.sessions, m.incomplete, m.iterations, m.runs,
		m.answers, m.productNodes, m.productEdges, m.phase,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return m, nil
}

// Observe records one finished session.
func (m *Metrics) Observe(res *rpq.Result) {
	if res == nil {
		return
	}
	mode := res.Mode.String()
	m.sessions.WithLabelValues(mode).Inc()
	if res.Stats.PossiblyIncomplete {
		m.incomplete.WithLabelValues(mode).Inc()
	}
	m.iterations.Observe(float64(res.Stats.Iterations))
	m.runs.Add(float64(res.Stats.Runs))
	m.answers.WithLabelValues(mode).Set(float64(len(res.Answers)))
	m.productNodes.Set(float64(res.ProductNodes))
	m.productEdges.Set(float64(res.ProductEdges))
	m.phase.WithLabelValues(PhasePreprocessing).Observe(res.Timings.Preprocessing.Seconds())
	m.phase.WithLabelValues(PhaseSearch).Observe(res.Timings.Search.Seconds())
	m.phase.WithLabelValues(PhasePostprocessing).Observe(res.Timings.Postprocessing.Seconds())
}

var _ rpq.Recorder = (*Metrics)(nil)
