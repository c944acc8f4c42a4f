// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/EdgeCount/OutEdges/OutEdgesByLabel/Labels.
// Determinism:
//   - OutEdges() and OutEdgesByLabel() keep insertion order.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// AI-HINT (file):
//   - Unweighted graphs MUST add edges with weight==0 (else ErrBadWeight).

package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// edgeIDPrefix is the textual prefix of edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// AddEdge creates a directed edge from→to read on label with the given weight.
// Missing endpoints are created.
//
// Steps:
//  1. Validate IDs, label and weight.
//  2. Lock, ensure endpoints, generate the edge ID.
//  3. Apply EdgeOptions, store the edge in the catalog and both adjacency indexes.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to, label string, weight float64, opts ...EdgeOption) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if label == "" {
		return "", ErrEmptyLabel
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return "", fmt.Errorf("%w: %v", ErrBadWeight, weight)
	}
	if weight < 0 {
		return "", fmt.Errorf("%w: %s→%s weight=%v", ErrNegativeWeight, from, to, weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.weighted && weight != 0 {
		return "", ErrBadWeight
	}

	// 2) Ensure vertices exist
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	// 3) Build and store
	e := &Edge{ID: nextEdgeID(g), From: from, To: to, Label: label, Weight: weight}
	for _, opt := range opts {
		opt(e)
	}
	g.out[from] = append(g.out[from], e)
	byLabel, ok := g.adjacency[from]
	if !ok {
		byLabel = make(map[string][]*Edge)
		g.adjacency[from] = byLabel
	}
	byLabel[label] = append(byLabel[label], e)
	g.labels[label] = struct{}{}
	if e.Output != "" {
		g.labels[e.Output] = struct{}{}
	}

	return e.ID, nil
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return int(g.nextEdgeID)
}

// OutEdges returns the out-edges of id in insertion order.
// Returns ErrVertexNotFound if id is unknown.
// Complexity: O(d).
func (g *Graph) OutEdges(id string) ([]*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}
	src := g.out[id]
	out := make([]*Edge, len(src))
	copy(out, src)

	return out, nil
}

// OutEdgesByLabel returns the out-edges of id read on label, in insertion order.
// Unknown vertices and labels yield nil; the product constructor treats both
// as "no transition".
//
// AI-HINT: this is the hot path of product construction.
func (g *Graph) OutEdgesByLabel(id, label string) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	src := g.adjacency[id][label]
	if len(src) == 0 {
		return nil
	}
	out := make([]*Edge, len(src))
	copy(out, src)

	return out
}

// Labels returns every label and output label used by some edge, sorted.
func (g *Graph) Labels() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.labels))
	for l := range g.labels {
		out = append(out, l)
	}
	sort.Strings(out)

	return out
}

// nextEdgeID returns the next edge ID; caller holds the write lock.
func nextEdgeID(g *Graph) string {
	g.nextEdgeID++
	buf := make([]byte, 0, 8)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, g.nextEdgeID, 10)

	return string(buf)
}
