// Package dijkstra runs Dijkstra-style searches over a product automaton and
// collects (source, target) answers with their minimal discovered cost.
//
// Overview:
//
//   - One search skeleton is executed once per initial product node.
//   - A termination Policy distinguishes the search modes:
//     PolicyNone      – run until the frontier is empty (exhaustive).
//     PolicyTopK      – stop once K distinct final nodes were seen while scanning edges.
//     PolicyThreshold – stop once the extracted node's weight exceeds the bound.
//   - Every Searcher carries an iteration counter shared by all of its runs and
//     compared against MaxIterations. Hitting the cap stops the current run and
//     every later one; the result then reports PossiblyIncomplete.
//
// Algorithm (per run):
//
//  1. initialize: every node's distance is +∞, the predecessor map is cleared,
//     the source's distance is 0.
//  2. Seed the frontier with every node of the graph, not only reachable ones.
//  3. While the frontier is non-empty and the counter is below the cap:
//     count an iteration, extract the minimum p, add p to the visited set, and
//     for each edge p→v: add v to the visited set, relax(p, v), reposition v.
//  4. Answers: every visited final node with finite distance.
//
// Relaxation uses "≤": on equal-cost paths the most recently scanned
// predecessor wins. Nodes already extracted are still relaxed (there is no
// closed set); they are not re-inserted into the frontier, so every run
// performs at most |V| iterations.
//
// Frontier:
//
//	An ordered set of (distance, index) pairs in a B-tree. Repositioning is
//	delete-old-key + insert-new-key, an exact decrease-key with no stale entries.
//	Equal distances are extracted in node-index order.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per run.
//   - Space: O(V) per Searcher (distance, predecessor, visited, frontier).
//
// Thread safety:
//
//	A Searcher owns mutable per-run state and must not be shared between
//	goroutines. Several Searchers may read the same product.Graph concurrently.
package dijkstra
