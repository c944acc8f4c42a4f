// Package rpq evaluates weighted regular-path queries end to end.
//
// A query session runs three stages in order:
//
//  1. Preprocessing: build the product automaton of the query automaton,
//     the transducer and the database graph (product.Constructor).
//  2. Search: one Dijkstra-style run per initial product node, with the
//     termination policy of the selected Mode (dijkstra.Searcher).
//  3. Postprocessing: top-K or threshold trimming, largest weight, summary.
//
// Modes:
//
//	classic      exhaustive search, all answers
//	topK         early-stopping top-K search, then trimmed to K
//	topKUO       exhaustive search, then trimmed to K (exact baseline)
//	threshold    early-stopping threshold search, then trimmed to the bound
//	thresholdUO  exhaustive search, then trimmed to the bound (exact baseline)
//	thresholdLW  exhaustive search reporting the largest answer cost
//
// A session never fails on degenerate inputs: an empty product graph or a
// query with no reachable final node yields an empty answer map. The iteration
// cap bounds work on zero-cost cycles; Result.Stats.PossiblyIncomplete reports
// when it was reached.
package rpq
