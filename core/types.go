// File: types.go
// Role: Edge, Graph, GraphOption, EdgeOption, sentinel errors and NewGraph.
// Concurrency:
//   - mu guards vertices, out, adjacency and labels.
// AI-HINT (file):
//   - Use WithWeighted() for transducers and database graphs; query automata stay unweighted.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEmptyLabel indicates an edge was added without a label.
	ErrEmptyLabel = errors.New("core: edge label is empty")

	// ErrBadWeight indicates a non-zero weight provided to an unweighted graph,
	// or a weight that is not a finite number.
	ErrBadWeight = errors.New("core: bad weight")

	// ErrNegativeWeight indicates a negative edge weight.
	ErrNegativeWeight = errors.New("core: negative edge weight")
)

// Edge is a labeled, weighted, directed connection From→To.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From is the source vertex ID.
	From string

	// To is the destination vertex ID.
	To string

	// Label is the symbol the edge is read on.
	Label string

	// Output is the symbol a transducer writes; empty means Label.
	Output string

	// Weight is the non-negative cost of traversing the edge.
	Weight float64
}

// OutputLabel returns the emitted symbol of e, falling back to Label.
func (e *Edge) OutputLabel() string {
	if e.Output == "" {
		return e.Label
	}

	return e.Output
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithWeighted allows non-zero edge weights in the Graph.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// EdgeOption configures properties of individual edges when added.
type EdgeOption func(*Edge)

// WithOutput sets the output label of a transducer edge.
func WithOutput(label string) EdgeOption {
	return func(e *Edge) { e.Output = label }
}

// Graph is the in-memory labeled multigraph.
//
// adjacency[from][label] lists out-edges of from read on label, in insertion order.
// out[from] lists all out-edges of from, in insertion order.
type Graph struct {
	mu sync.RWMutex

	weighted bool

	nextEdgeID uint64
	vertices   map[string]struct{}
	out        map[string][]*Edge
	adjacency  map[string]map[string][]*Edge
	labels     map[string]struct{}
}

// NewGraph creates an empty Graph. By default the graph is unweighted.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		out:       make(map[string][]*Edge),
		adjacency: make(map[string]map[string][]*Edge),
		labels:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
