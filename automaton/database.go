package automaton

import (
	"fmt"

	"github.com/katalvlaran/wrpq/core"
)

// Database is the labeled graph a query is evaluated over.
type Database struct {
	graph *core.Graph
	start map[string]struct{}
}

// NewDatabase returns an empty database graph. Edge weights are allowed and
// are added to the transducer cost during product construction.
func NewDatabase() *Database {
	return &Database{
		graph: core.NewGraph(core.WithWeighted()),
		start: make(map[string]struct{}),
	}
}

// Graph exposes the underlying graph; callers must treat it as read-only.
func (d *Database) Graph() *core.Graph { return d.graph }

// AddNode registers a node without edges.
func (d *Database) AddNode(id string) error {
	return d.graph.AddVertex(id)
}

// AddEdge adds a labeled edge from→to with an optional weight (0 for none).
func (d *Database) AddEdge(from, to, label string, weight float64) error {
	if _, err := d.graph.AddEdge(from, to, label, weight); err != nil {
		return fmt.Errorf("automaton: database edge %s-%s->%s: %w", from, label, to, err)
	}

	return nil
}

// SetStart restricts query sources to the given nodes. Without any call,
// every node is a start node.
func (d *Database) SetStart(id string) error {
	if !d.graph.HasVertex(id) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	d.start[id] = struct{}{}

	return nil
}

// StartNodes returns the start nodes sorted.
func (d *Database) StartNodes() []string {
	if len(d.start) == 0 {
		return d.graph.Vertices()
	}

	return sortedKeys(d.start)
}

// Nodes returns every node sorted.
func (d *Database) Nodes() []string { return d.graph.Vertices() }

// Step returns the edges leaving node on label.
func (d *Database) Step(node, label string) []*core.Edge {
	return d.graph.OutEdgesByLabel(node, label)
}
