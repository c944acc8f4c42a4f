package automaton

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/wrpq/core"
)

// Sentinel errors for automaton construction.
var (
	// ErrStateNotFound indicates SetInitial/SetFinal referenced an unknown state.
	ErrStateNotFound = errors.New("automaton: state not found")

	// ErrNodeNotFound indicates SetStart referenced an unknown database node.
	ErrNodeNotFound = errors.New("automaton: database node not found")
)

// Automaton is a labeled graph with initial and final state sets.
// It serves both as query automaton (unweighted) and as transducer (weighted).
type Automaton struct {
	graph   *core.Graph
	initial map[string]struct{}
	final   map[string]struct{}
}

// NewQuery returns an empty query automaton.
func NewQuery() *Automaton {
	return newAutomaton(core.NewGraph())
}

// NewTransducer returns an empty transducer.
func NewTransducer() *Automaton {
	return newAutomaton(core.NewGraph(core.WithWeighted()))
}

func newAutomaton(g *core.Graph) *Automaton {
	return &Automaton{
		graph:   g,
		initial: make(map[string]struct{}),
		final:   make(map[string]struct{}),
	}
}

// Graph exposes the underlying graph; callers must treat it as read-only.
func (a *Automaton) Graph() *core.Graph { return a.graph }

// AddState registers a state without transitions.
func (a *Automaton) AddState(id string) error {
	return a.graph.AddVertex(id)
}

// AddTransition adds a query transition from -label-> to.
func (a *Automaton) AddTransition(from, to, label string) error {
	_, err := a.graph.AddEdge(from, to, label, 0)
	if err != nil {
		return fmt.Errorf("automaton: transition %s-%s->%s: %w", from, label, to, err)
	}

	return nil
}

// AddTranslation adds a transducer transition reading in, writing out, at cost.
// An empty out keeps the label unchanged.
func (a *Automaton) AddTranslation(from, to, in, out string, cost float64) error {
	var opts []core.EdgeOption
	if out != "" && out != in {
		opts = append(opts, core.WithOutput(out))
	}
	_, err := a.graph.AddEdge(from, to, in, cost, opts...)
	if err != nil {
		return fmt.Errorf("automaton: translation %s-%s/%s->%s: %w", from, in, out, to, err)
	}

	return nil
}

// SetInitial marks an existing state as initial.
func (a *Automaton) SetInitial(id string) error {
	if !a.graph.HasVertex(id) {
		return fmt.Errorf("%w: %q", ErrStateNotFound, id)
	}
	a.initial[id] = struct{}{}

	return nil
}

// SetFinal marks an existing state as accepting.
func (a *Automaton) SetFinal(id string) error {
	if !a.graph.HasVertex(id) {
		return fmt.Errorf("%w: %q", ErrStateNotFound, id)
	}
	a.final[id] = struct{}{}

	return nil
}

// IsInitial reports whether id is an initial state.
func (a *Automaton) IsInitial(id string) bool {
	_, ok := a.initial[id]
	return ok
}

// IsFinal reports whether id is an accepting state.
func (a *Automaton) IsFinal(id string) bool {
	_, ok := a.final[id]
	return ok
}

// Initial returns the initial states sorted.
func (a *Automaton) Initial() []string { return sortedKeys(a.initial) }

// Final returns the accepting states sorted.
func (a *Automaton) Final() []string { return sortedKeys(a.final) }

// States returns every state sorted.
func (a *Automaton) States() []string { return a.graph.Vertices() }

// Step returns the transitions leaving state on label.
func (a *Automaton) Step(state, label string) []*core.Edge {
	return a.graph.OutEdgesByLabel(state, label)
}

// Transitions returns every transition leaving state.
func (a *Automaton) Transitions(state string) []*core.Edge {
	edges, err := a.graph.OutEdges(state)
	if err != nil {
		return nil
	}

	return edges
}

// Labels returns the alphabet used by the automaton's transitions.
func (a *Automaton) Labels() []string { return a.graph.Labels() }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
