package rpq

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/wrpq/answers"
	"github.com/katalvlaran/wrpq/automaton"
	"github.com/katalvlaran/wrpq/dijkstra"
	"github.com/katalvlaran/wrpq/product"
)

// Sentinel errors for query sessions.
var (
	// ErrUnknownMode indicates a mode name or value outside the supported set.
	ErrUnknownMode = errors.New("rpq: unknown mode")

	// ErrNilInputs indicates a missing query, transducer or database.
	ErrNilInputs = errors.New("rpq: query, transducer and database are required")

	// ErrBadK indicates K < 1 for a top-K mode.
	ErrBadK = errors.New("rpq: K must be positive")

	// ErrBadBound indicates a negative or NaN bound for a threshold mode.
	ErrBadBound = errors.New("rpq: threshold must be a non-negative number")
)

// Inputs are the three read-only graphs of a query.
type Inputs struct {
	Query      *automaton.Automaton
	Transducer *automaton.Automaton
	Database   *automaton.Database
}

// Query selects the mode and its parameters.
//
// MaxIterations is the session iteration cap (0 = automatic, see dijkstra.Options).
type Query struct {
	Mode          Mode
	K             int
	Threshold     float64
	MaxIterations int
}

// Timings are the wall-clock durations of the session stages.
type Timings struct {
	Preprocessing  time.Duration
	Search         time.Duration
	Postprocessing time.Duration
	Total          time.Duration
}

// Result is the outcome of one query session.
type Result struct {
	SessionID string
	Mode      Mode

	// Answers after postprocessing; Ordered lists them cheapest first.
	Answers answers.Map
	Ordered []answers.Entry

	// Largest is the largest answer cost (ModeLargestWeight only);
	// HasLargest is false when there was no answer.
	Largest    float64
	HasLargest bool

	Summary answers.Summary
	Stats   dijkstra.Stats
	Timings Timings

	ProductNodes     int
	ProductEdges     int
	MaxNodesPossible int
}

// Recorder receives every finished session; see package metrics.
type Recorder interface {
	Observe(res *Result)
}

// Evaluator runs query sessions.
type Evaluator struct {
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the structured logger; the default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder registers a Recorder notified after every session.
func WithRecorder(r Recorder) Option {
	return func(e *Evaluator) { e.recorder = r }
}

// NewEvaluator returns an Evaluator with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// validate checks the query parameters the mode depends on.
func (q Query) validate() error {
	switch q.Mode {
	case ModeClassic, ModeLargestWeight:
	case ModeTopK, ModeTopKUnoptimized:
		if q.K < 1 {
			return fmt.Errorf("%w: %d", ErrBadK, q.K)
		}
	case ModeThreshold, ModeThresholdUnoptimized:
		if math.IsNaN(q.Threshold) || q.Threshold < 0 {
			return fmt.Errorf("%w: %v", ErrBadBound, q.Threshold)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(q.Mode))
	}
	if q.MaxIterations < 0 {
		return fmt.Errorf("rpq: %w", dijkstra.ErrBadMaxIterations)
	}
	return nil
}

// searchOptions maps the mode to the engine's termination policy.
func (q Query) searchOptions() []dijkstra.Option {
	opts := []dijkstra.Option{dijkstra.WithMaxIterations(q.MaxIterations)}
	switch q.Mode {
	case ModeTopK:
		opts = append(opts, dijkstra.WithTopK(q.K))
	case ModeThreshold:
		opts = append(opts, dijkstra.WithThreshold(q.Threshold))
	}
	return opts
}

// Evaluate runs one query session: construct, search, postprocess.
func (e *Evaluator) Evaluate(in Inputs, q Query) (*Result, error) {
	if in.Query == nil || in.Transducer == nil || in.Database == nil {
		return nil, ErrNilInputs
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	res := &Result{SessionID: uuid.NewString(), Mode: q.Mode}
	log := e.logger.With("session", res.SessionID, "mode", q.Mode.String())

	// 1) Preprocessing.
	start := e.now()
	constructor := product.NewConstructor(in.Query, in.Transducer, in.Database)
	g, err := constructor.Construct()
	if err != nil {
		return nil, fmt.Errorf("rpq: construct product automaton: %w", err)
	}
	res.ProductNodes = g.NodeCount()
	res.ProductEdges = g.EdgeCount()
	res.MaxNodesPossible = constructor.MaxNodesPossible()
	if cycle, ok := g.ZeroCostCycle(); ok {
		log.Warn("product automaton has a zero-cost cycle; search may hit the iteration cap",
			"cycle_length", len(cycle), "at", cycle[0].ID())
	}
	afterConstruct := e.now()
	res.Timings.Preprocessing = afterConstruct.Sub(start)
	log.Debug("product automaton constructed",
		"nodes", res.ProductNodes, "edges", res.ProductEdges,
		"initial", len(g.InitialNodes()), "max_nodes", res.MaxNodesPossible,
		"database_nodes", in.Database.Graph().VertexCount(),
		"database_edges", in.Database.Graph().EdgeCount())

	// 2) Search.
	opts := append(q.searchOptions(), dijkstra.WithRunHook(func(src *product.Node, st dijkstra.RunStats) {
		log.Debug("search run finished", "source", src.ID(),
			"iterations", st.Iterations, "capped", st.Capped, "stopped_early", st.StoppedEarly)
	}))
	searcher, err := dijkstra.New(g, opts...)
	if err != nil {
		return nil, fmt.Errorf("rpq: %w", err)
	}
	found := searcher.SearchAll()
	res.Stats = found.Stats
	afterSearch := e.now()
	res.Timings.Search = afterSearch.Sub(afterConstruct)

	// 3) Postprocessing.
	res.Answers = postprocess(q, found.Answers)
	if q.Mode == ModeLargestWeight {
		res.Largest, res.HasLargest = answers.Largest(res.Answers)
	}
	res.Ordered = res.Answers.Sorted()
	res.Summary = answers.Summarize(res.Answers)
	end := e.now()
	res.Timings.Postprocessing = end.Sub(afterSearch)
	res.Timings.Total = end.Sub(start)

	if res.Stats.PossiblyIncomplete {
		log.Warn("iteration cap reached; answers may be incomplete",
			"iterations", res.Stats.Iterations, "max_iterations", res.Stats.MaxIterations)
	}
	log.Info("query evaluated",
		"answers", len(res.Answers), "iterations", res.Stats.Iterations,
		"runs", res.Stats.Runs, "total", res.Timings.Total)

	if e.recorder != nil {
		e.recorder.Observe(res)
	}

	return res, nil
}

// postprocess applies the mode's trimming to the raw answers.
func postprocess(q Query, raw answers.Map) answers.Map {
	switch q.Mode {
	case ModeTopK, ModeTopKUnoptimized:
		return answers.TopK(raw, q.K)
	case ModeThreshold, ModeThresholdUnoptimized:
		return answers.Threshold(raw, q.Threshold)
	default:
		return raw
	}
}
