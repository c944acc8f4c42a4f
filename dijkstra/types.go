package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/wrpq/answers"
	"github.com/katalvlaran/wrpq/product"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNilGraph indicates that a nil *product.Graph was passed to New.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrBadMaxIterations indicates a negative iteration cap.
	ErrBadMaxIterations = errors.New("dijkstra: MaxIterations must be non-negative")

	// ErrBadTopK indicates a top-K policy with K < 1.
	ErrBadTopK = errors.New("dijkstra: K must be positive")

	// ErrBadThreshold indicates a threshold that is negative or NaN.
	ErrBadThreshold = errors.New("dijkstra: threshold must be a non-negative number")

	// ErrForeignNode indicates a source node that does not belong to the graph.
	ErrForeignNode = errors.New("dijkstra: source node not in graph")
)

// Policy selects the early-termination rule of a search.
type Policy int

const (
	// PolicyNone runs every search to an empty frontier (or the cap).
	PolicyNone Policy = iota

	// PolicyTopK stops a run once K distinct final nodes were observed while
	// scanning edges. They are not necessarily the K cheapest.
	PolicyTopK

	// PolicyThreshold stops a run once the extracted node's distance exceeds
	// the bound.
	PolicyThreshold
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyTopK:
		return "top-k"
	case PolicyThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Options configures a Searcher.
//
// MaxIterations – cap on iterations across all runs of one Searcher;
//
//	0 selects |V|·max(1, |initial|) + 1, which every session stays below.
//
// Policy, K, Threshold – termination policy and its parameter.
// OnRun – called after every run with its source and statistics.
type Options struct {
	MaxIterations int
	Policy        Policy
	K             int
	Threshold     float64
	OnRun         func(source *product.Node, stats RunStats)

	// err records the first invalid option; surfaced by New.
	err error
}

// Option represents a functional option for configuring a Searcher.
type Option func(*Options)

// DefaultOptions returns exhaustive search with an automatic cap.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 0,
		Policy:        PolicyNone,
		OnRun:         func(*product.Node, RunStats) {},
	}
}

// WithMaxIterations sets the iteration cap shared by all runs of a Searcher.
// Negative values are recorded and reported by New as ErrBadMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.fail(fmt.Errorf("%w: %d", ErrBadMaxIterations, n))
			return
		}
		o.MaxIterations = n
	}
}

// WithTopK selects PolicyTopK with the given K.
func WithTopK(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.fail(fmt.Errorf("%w: %d", ErrBadTopK, k))
			return
		}
		o.Policy = PolicyTopK
		o.K = k
	}
}

// WithThreshold selects PolicyThreshold with the given bound.
func WithThreshold(bound float64) Option {
	return func(o *Options) {
		if math.IsNaN(bound) || bound < 0 {
			o.fail(fmt.Errorf("%w: %v", ErrBadThreshold, bound))
			return
		}
		o.Policy = PolicyThreshold
		o.Threshold = bound
	}
}

// WithRunHook installs a callback invoked after every single-source run.
func WithRunHook(fn func(source *product.Node, stats RunStats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRun = fn
		}
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// RunStats describes one single-source run.
type RunStats struct {
	// Iterations performed by this run.
	Iterations int

	// Capped is true when the run stopped on the iteration cap with a
	// non-empty frontier.
	Capped bool

	// StoppedEarly is true when the termination policy ended the run.
	StoppedEarly bool
}

// Stats describes a Searcher session.
type Stats struct {
	// Iterations is the session counter (sum over runs).
	Iterations int

	// MaxObserved is the highest counter value recorded after a run.
	MaxObserved int

	// MaxIterations is the resolved cap.
	MaxIterations int

	// Runs is the number of single-source runs.
	Runs int

	// PossiblyIncomplete is true iff the counter reached the cap.
	PossiblyIncomplete bool
}

// Result is the outcome of SearchAll.
type Result struct {
	Answers answers.Map
	Stats   Stats
}
