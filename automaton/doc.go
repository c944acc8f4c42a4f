// Package automaton defines the three read-only inputs of a weighted
// regular-path query, each backed by a core.Graph:
//
//   - Query automaton: states connected by label transitions, with initial and
//     final state sets. A path in the database matches the query when its label
//     word is accepted.
//   - Transducer: a weighted automaton whose transitions read a query label and
//     write a database label at some non-negative cost (L/M, c). An empty output
//     means the identity translation L/L.
//   - Database: a labeled graph whose edges may carry their own weight, plus an
//     optional set of start nodes (every node, when unset).
//
// IdentityTransducer generates the transducer used when none is provided.
package automaton
