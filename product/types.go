package product

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for product graphs.
var (
	// ErrNilInput indicates a nil query, transducer or database.
	ErrNilInput = errors.New("product: nil input graph")

	// ErrNegativeCost indicates an edge with a negative or non-finite cost.
	ErrNegativeCost = errors.New("product: edge cost must be finite and non-negative")

	// ErrForeignNode indicates a node that does not belong to this graph.
	ErrForeignNode = errors.New("product: node does not belong to graph")
)

// Key is the composite identity of a product node.
type Key struct {
	Query      string
	Transducer string
	Database   string
}

// String renders the key as (q,t,d).
func (k Key) String() string {
	return fmt.Sprintf("(%s,%s,%s)", k.Query, k.Transducer, k.Database)
}

// Node is one product state.
//
// Index is dense and stable in insertion order; search code keeps per-run
// state (distance, predecessor, visited) in slices indexed by it.
type Node struct {
	Key   Key
	Index int
	Final bool
	Edges []*Edge
}

// ID returns the composite identifier (q,t,d).
func (n *Node) ID() string { return n.Key.String() }

// DatabaseID returns the database component; answers are reported on it.
func (n *Node) DatabaseID() string { return n.Key.Database }

// Edge is a weighted product transition.
type Edge struct {
	From *Node
	To   *Node
	Cost float64
}

// Graph is the materialized product automaton.
type Graph struct {
	nodes   []*Node
	edges   []*Edge
	initial []*Node
	index   map[Key]*Node
	isInit  map[*Node]struct{}
}

// NewGraph returns an empty product graph.
func NewGraph() *Graph {
	return &Graph{
		index:  make(map[Key]*Node),
		isInit: make(map[*Node]struct{}),
	}
}

// AddNode returns the node for key, creating it if absent.
// The boolean is true when the node was created by this call.
// final is only applied on creation.
func (g *Graph) AddNode(key Key, final bool) (*Node, bool) {
	if n, ok := g.Node(key); ok {
		return n, false
	}
	n := &Node{Key: key, Index: len(g.nodes), Final: final}
	g.nodes = append(g.nodes, n)
	g.index[key] = n

	return n, true
}

// AddEdge adds from→to with the given cost.
func (g *Graph) AddEdge(from, to *Node, cost float64) (*Edge, error) {
	if !g.owns(from) || !g.owns(to) {
		return nil, ErrForeignNode
	}
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nil, fmt.Errorf("%w: %s→%s cost=%v", ErrNegativeCost, from.ID(), to.ID(), cost)
	}
	e := &Edge{From: from, To: to, Cost: cost}
	from.Edges = append(from.Edges, e)
	g.edges = append(g.edges, e)

	return e, nil
}

// MarkInitial adds n to the initial-node subset (idempotent).
func (g *Graph) MarkInitial(n *Node) error {
	if !g.owns(n) {
		return ErrForeignNode
	}
	if g.IsInitial(n) {
		return nil
	}
	g.isInit[n] = struct{}{}
	g.initial = append(g.initial, n)

	return nil
}

// Node looks up a node by key.
func (g *Graph) Node(key Key) (*Node, bool) {
	n, ok := g.index[key]
	return n, ok
}

// Nodes returns all nodes in index order. The slice must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns all edges in insertion order. The slice must not be modified.
func (g *Graph) Edges() []*Edge { return g.edges }

// InitialNodes returns the initial nodes in marking order. The slice must not be modified.
func (g *Graph) InitialNodes() []*Node { return g.initial }

// IsInitial reports whether n is an initial node.
func (g *Graph) IsInitial(n *Node) bool {
	_, ok := g.isInit[n]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Owns reports whether n is a node of g.
func (g *Graph) Owns(n *Node) bool { return g.owns(n) }

func (g *Graph) owns(n *Node) bool {
	return n != nil && n.Index >= 0 && n.Index < len(g.nodes) && g.nodes[n.Index] == n
}
