// Package product builds and holds the product automaton of a weighted
// regular-path query: the synchronized cross-product of a query automaton, a
// cost-labeled transducer and a database graph.
//
// A product node is a triple (q, t, d). An edge (q,t,d) → (q',t',d') exists when
//
//	q -L-> q'          in the query automaton,
//	t -L/M, c-> t'     in the transducer,
//	d -M, w-> d'       in the database graph,
//
// and costs c + w. A node is final iff q and t are both accepting. Initial nodes
// pair every initial query state with every initial transducer state and every
// database start node.
//
// Construction is eager and breadth-first from the initial nodes, so only
// reachable triples are materialized. Nodes are deduplicated by key, which makes
// cycles (including zero-cost cycles) harmless here; bounding work on such
// cycles is the search layer's job.
//
// Complexity:
//
//   - Time:  O(N·Δ) where N = reachable product nodes and Δ = the product of the
//     per-label out-degrees of the three inputs.
//   - Space: O(N + E) for the materialized graph.
package product
