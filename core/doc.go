// Package core provides the labeled, weighted, directed multigraph that backs
// every input structure of a weighted regular-path query: the query automaton,
// the cost-labeled transducer and the database graph.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Directed edges only; automata and database graphs are never mirrored.
//   - Every edge carries a non-empty Label and an optional Output label
//     (used by transducer translations L/M; empty Output means "same as Label").
//   - Weighted vs. unweighted (WithWeighted); weights are float64 and never negative.
//   - Self-loops and parallel edges are always allowed: a query automaton such as
//     a* needs a loop, and a transducer may offer several translations of one label.
//   - Constant-time label dispatch via nested maps:
//     adjacency[from][label] = []*Edge (insertion order)
//
// Why a dedicated core?
//
//   - Product construction asks one question over and over: "which edges leave
//     vertex v with label L?". OutEdgesByLabel answers it without a scan.
//   - Deterministic iteration: Vertices() and Labels() are sorted, OutEdges()
//     and OutEdgesByLabel() keep insertion order, so product graphs are reproducible.
//
// Core Methods:
//
//	AddVertex(id string) error                                   // O(1)
//	HasVertex(id string) bool                                    // O(1)
//	AddEdge(from, to, label string, w float64, opts ...EdgeOption) (string, error) // O(1)†
//	OutEdges(id string) ([]*Edge, error)                         // O(d)
//	OutEdgesByLabel(id, label string) []*Edge                    // O(1) + copy
//	Vertices() []string                                          // O(V·log V)
//	Labels() []string                                            // O(L·log L)
//	VertexCount(), EdgeCount() int                               // O(1)
//
// Concurrency:
//
//	A single sync.RWMutex guards vertices, edges and adjacency. Mutations take
//	the write lock; queries take the read lock and return copies, so callers may
//	iterate results while other goroutines keep building the graph.
//
// Errors:
//
//	ErrEmptyVertexID   - vertex ID is the empty string.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrEmptyLabel      - edge label is the empty string.
//	ErrBadWeight       - non-zero weight on an unweighted graph, or NaN/±Inf.
//	ErrNegativeWeight  - negative edge weight.
package core
