package dijkstra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/wrpq/answers"
	"github.com/katalvlaran/wrpq/product"
)

// Searcher runs single-source searches over one product graph and carries the
// session iteration counter across them.
type Searcher struct {
	g       *product.Graph
	options Options
	limit   int // resolved iteration cap

	// Session counters.
	iterations  int
	maxObserved int
	runs        int

	// Per-run scratch, reset by initialize.
	source   *product.Node
	dist     []float64
	prev     []*product.Node
	visited  []bool
	order    []*product.Node // visited nodes in visiting order
	frontier *frontier
}

// New validates the options and allocates a Searcher for g.
//
// Preconditions and validation (in order):
//  1. Every Option is valid (ErrBadMaxIterations, ErrBadTopK, ErrBadThreshold).
//  2. g must be non-nil (ErrNilGraph).
func New(g *product.Graph, opts ...Option) (*Searcher, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil {
		return nil, ErrNilGraph
	}

	n := g.NodeCount()
	limit := cfg.MaxIterations
	if limit == 0 {
		limit = n*max(1, len(g.InitialNodes())) + 1
	}

	return &Searcher{
		g:        g,
		options:  cfg,
		limit:    limit,
		dist:     make([]float64, n),
		prev:     make([]*product.Node, n),
		visited:  make([]bool, n),
		order:    make([]*product.Node, 0, n),
		frontier: newFrontier(n),
	}, nil
}

// Run performs one single-source search from source.
// The session counter is not reset; once it reaches the cap, Run returns
// immediately with a capped RunStats.
func (s *Searcher) Run(source *product.Node) (RunStats, error) {
	if !s.g.Owns(source) {
		return RunStats{}, fmt.Errorf("%w: %v", ErrForeignNode, source)
	}
	s.initialize(source)
	stats := s.process()

	s.runs++
	if s.iterations > s.maxObserved {
		s.maxObserved = s.iterations
	}
	s.options.OnRun(source, stats)

	return stats, nil
}

// initialize resets every distance to +∞ and every predecessor to nil, then
// sets the source distance to 0 and seeds the frontier with all nodes.
func (s *Searcher) initialize(source *product.Node) {
	s.source = source
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
		s.prev[i] = nil
		s.visited[i] = false
	}
	s.dist[source.Index] = 0
	s.order = s.order[:0]

	s.frontier.reset()
	for i, d := range s.dist {
		s.frontier.push(i, d)
	}
}

// process is the main loop; it stops on an empty frontier, on the cap, or
// when the termination policy fires.
func (s *Searcher) process() RunStats {
	var stats RunStats
	nodes := s.g.Nodes()
	var finals map[int]struct{}
	if s.options.Policy == PolicyTopK {
		finals = make(map[int]struct{}, s.options.K)
	}

	for s.frontier.len() > 0 {
		if s.iterations >= s.limit {
			stats.Capped = true
			break
		}
		s.iterations++
		stats.Iterations++

		// 1) Extract the minimum.
		it, _ := s.frontier.popMin()
		p := nodes[it.index]

		// 2) Threshold: extraction order is non-decreasing, nothing cheaper remains.
		if s.options.Policy == PolicyThreshold && s.dist[p.Index] > s.options.Threshold {
			stats.StoppedEarly = true
			break
		}

		// 3) Settle p and scan its edges.
		s.visit(p)
		for _, e := range p.Edges {
			v := e.To
			s.visit(v)
			s.relax(p, v, e.Cost)

			// 4) Top-K: count distinct final targets seen so far.
			if finals != nil && v.Final {
				finals[v.Index] = struct{}{}
				if len(finals) >= s.options.K {
					stats.StoppedEarly = true
					return stats
				}
			}
		}
	}

	return stats
}

// relax lowers v's distance through u when dist(u)+cost is finite and ≤ dist(v),
// records u as v's predecessor, and repositions v in the frontier.
func (s *Searcher) relax(u, v *product.Node, cost float64) {
	candidate := s.dist[u.Index] + cost
	if math.IsInf(candidate, 1) || candidate > s.dist[v.Index] {
		return
	}
	old := s.dist[v.Index]
	s.dist[v.Index] = candidate
	s.prev[v.Index] = u
	s.frontier.reposition(v.Index, old, candidate)
}

// visit adds n to the visited set once.
func (s *Searcher) visit(n *product.Node) {
	if s.visited[n.Index] {
		return
	}
	s.visited[n.Index] = true
	s.order = append(s.order, n)
}

// Collect writes the answers of the last run into m: every visited final node
// with finite distance, keyed by (source, target) database IDs. Final nodes of
// one run that share a database target keep their minimal distance; an entry
// left in m by an earlier run is overwritten.
func (s *Searcher) Collect(m answers.Map) {
	if s.source == nil {
		return
	}
	run := make(answers.Map)
	for _, n := range s.order {
		if !n.Final {
			continue
		}
		d := s.dist[n.Index]
		if math.IsInf(d, 1) {
			continue
		}
		pair := answers.Pair{Source: s.source.DatabaseID(), Target: n.DatabaseID()}
		if old, ok := run[pair]; !ok || d < old {
			run[pair] = d
		}
	}
	m.Merge(run)
}

// SearchAll runs a search from every initial node and merges the answers.
func (s *Searcher) SearchAll() Result {
	res := Result{Answers: make(answers.Map)}
	for _, n := range s.g.InitialNodes() {
		// Initial nodes always belong to the graph.
		if _, err := s.Run(n); err != nil {
			continue
		}
		s.Collect(res.Answers)
	}
	res.Stats = s.Stats()

	return res
}

// Stats returns the session statistics.
func (s *Searcher) Stats() Stats {
	return Stats{
		Iterations:         s.iterations,
		MaxObserved:        s.maxObserved,
		MaxIterations:      s.limit,
		Runs:               s.runs,
		PossiblyIncomplete: s.iterations >= s.limit,
	}
}

// Distance returns n's distance in the last run (+∞ if unreached).
func (s *Searcher) Distance(n *product.Node) float64 {
	if !s.g.Owns(n) {
		return math.Inf(1)
	}
	return s.dist[n.Index]
}

// Predecessor returns n's predecessor in the last run, or nil.
func (s *Searcher) Predecessor(n *product.Node) *product.Node {
	if !s.g.Owns(n) {
		return nil
	}
	return s.prev[n.Index]
}

// Visited returns the visited nodes of the last run in visiting order.
func (s *Searcher) Visited() []*product.Node {
	out := make([]*product.Node, len(s.order))
	copy(out, s.order)

	return out
}

// Path rebuilds the path source→target of the last run from the predecessor
// map. It returns nil when target was not reached or when the predecessor
// chain does not lead back to the source; zero-cost cycles can rewrite the
// source's own predecessor, so the walk guards against revisits.
func (s *Searcher) Path(target *product.Node) []*product.Node {
	if s.source == nil || !s.g.Owns(target) || math.IsInf(s.dist[target.Index], 1) {
		return nil
	}
	seen := make(map[int]struct{})
	path := []*product.Node{target}
	for cur := target; cur != s.source; {
		seen[cur.Index] = struct{}{}
		cur = s.prev[cur.Index]
		if cur == nil {
			return nil
		}
		if _, ok := seen[cur.Index]; ok {
			return nil
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
