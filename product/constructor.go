package product

import (
	"github.com/katalvlaran/wrpq/automaton"
)

// Constructor materializes the product of a query automaton, a transducer and
// a database graph. The inputs are read-only.
type Constructor struct {
	query      *automaton.Automaton
	transducer *automaton.Automaton
	database   *automaton.Database

	graph *Graph
}

// NewConstructor binds the three inputs. Nothing is built until Construct.
func NewConstructor(query, transducer *automaton.Automaton, database *automaton.Database) *Constructor {
	return &Constructor{query: query, transducer: transducer, database: database}
}

// Graph returns the constructed graph, or nil before Construct has run.
func (c *Constructor) Graph() *Graph { return c.graph }

// MaxNodesPossible returns |Q|·|T|·|D|, the size of the full triple space.
func (c *Constructor) MaxNodesPossible() int {
	if c.query == nil || c.transducer == nil || c.database == nil {
		return 0
	}

	return c.query.Graph().VertexCount() * c.transducer.Graph().VertexCount() * c.database.Graph().VertexCount()
}

// Construct builds the reachable product graph. Subsequent calls return the
// same graph.
//
// Steps:
//  1. Seed the queue with every initial triple (q0, t0, d), marking each initial.
//  2. Pop a node (q, t, d); for every query transition q -L-> q', every
//     transducer transition t -L/M, c-> t' and every database edge d -M, w-> d',
//     add (q', t', d') (enqueue if new) and the edge of cost c + w.
//  3. Stop when the queue is empty.
func (c *Constructor) Construct() (*Graph, error) {
	if c.graph != nil {
		return c.graph, nil
	}
	if c.query == nil || c.transducer == nil || c.database == nil {
		return nil, ErrNilInput
	}

	g := NewGraph()
	queue := make([]*Node, 0)

	// 1) Initial triples, in sorted component order.
	for _, q0 := range c.query.Initial() {
		for _, t0 := range c.transducer.Initial() {
			for _, d := range c.database.StartNodes() {
				n, created := c.node(g, Key{Query: q0, Transducer: t0, Database: d})
				if err := g.MarkInitial(n); err != nil {
					return nil, err
				}
				if created {
					queue = append(queue, n)
				}
			}
		}
	}

	// 2) Breadth-first expansion.
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, qe := range c.query.Transitions(u.Key.Query) {
			for _, te := range c.transducer.Step(u.Key.Transducer, qe.Label) {
				for _, de := range c.database.Step(u.Key.Database, te.OutputLabel()) {
					v, created := c.node(g, Key{Query: qe.To, Transducer: te.To, Database: de.To})
					if created {
						queue = append(queue, v)
					}
					if _, err := g.AddEdge(u, v, te.Weight+de.Weight); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	c.graph = g

	return g, nil
}

// node returns the product node for key, flagging it final on creation.
func (c *Constructor) node(g *Graph, key Key) (*Node, bool) {
	final := c.query.IsFinal(key.Query) && c.transducer.IsFinal(key.Transducer)
	return g.AddNode(key, final)
}
