// Package wrpq evaluates weighted regular-path queries over graph databases.
//
// A query automaton describes the label paths of interest, a transducer
// rewrites labels at a cost, and the database is a labeled weighted graph.
// Their product is searched with a Dijkstra family of algorithms to produce
// (source, target) answers with minimal cost.
//
// Packages:
//
//	core/       labeled, weighted directed multigraph with R/W locking
//	automaton/  query automaton, transducer and database on top of core
//	product/    product automaton and its eager BFS constructor
//	dijkstra/   per-source search with top-K and threshold stopping
//	answers/    answer maps, trimming and summary statistics
//	rpq/        query sessions: modes, pipeline, timings, logging
//	config/     YAML configuration with environment overrides
//	dataset/    YAML loader for the three input graphs
//	metrics/    Prometheus collectors for session statistics
//	cmd/wrpq/   command-line interface
//
// Quick start:
//
//	in, _ := dataset.LoadSample("social", dataset.Options{})
//	res, _ := rpq.NewEvaluator().Evaluate(in, rpq.Query{Mode: rpq.ModeClassic})
//	for _, e := range res.Ordered {
//		fmt.Println(e)
//	}
package wrpq
