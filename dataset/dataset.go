// Package dataset reads the three input graphs of a query from YAML.
//
// A dataset file has three top-level sections:
//
//	query:
//	  states: [q0, q1]        # optional; states used by transitions are added implicitly
//	  initial: [q0]
//	  final: [q1]
//	  transitions:
//	    - {from: q0, to: q1, label: knows}
//	transducer:               # omitted when the transducer is generated
//	  initial: [t0]
//	  final: [t0]
//	  transitions:
//	    - {from: t0, to: t0, in: knows, out: likes, cost: 2}
//	database:
//	  nodes: [ann]            # optional, like query.states
//	  start: [ann]            # optional; all nodes are sources when empty
//	  edges:
//	    - {from: ann, to: bob, label: knows, weight: 1}
//
// Samples bundled with the binary are listed by Samples and read by LoadSample.
package dataset

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wrpq/automaton"
	"github.com/katalvlaran/wrpq/rpq"
)

//go:embed samples/*.yaml
var samplesFS embed.FS

// Sentinel errors for malformed datasets.
var (
	// ErrMissingSection indicates an absent query, transducer or database section.
	ErrMissingSection = errors.New("dataset: missing section")

	// ErrUnknownSample indicates LoadSample was given an unknown name.
	ErrUnknownSample = errors.New("dataset: unknown sample")
)

// Options control how the transducer is obtained.
type Options struct {
	// GenerateTransducer ignores the file's transducer section and builds an
	// identity transducer over the query labels.
	GenerateTransducer bool

	// GeneratedCost is the translation cost of the generated transducer.
	GeneratedCost float64
}

// File is the YAML document layout.
type File struct {
	Query      *AutomatonSpec `yaml:"query"`
	Transducer *AutomatonSpec `yaml:"transducer"`
	Database   *DatabaseSpec  `yaml:"database"`
}

// AutomatonSpec describes a query automaton or a transducer.
type AutomatonSpec struct {
	States      []string         `yaml:"states"`
	Initial     []string         `yaml:"initial"`
	Final       []string         `yaml:"final"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

// TransitionSpec is one transition. Query transitions use Label; transducer
// transitions use In, Out and Cost (Label is accepted as an alias of In).
// An empty Out copies the input label.
type TransitionSpec struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Label string  `yaml:"label"`
	In    string  `yaml:"in"`
	Out   string  `yaml:"out"`
	Cost  float64 `yaml:"cost"`
}

// DatabaseSpec describes the database graph.
type DatabaseSpec struct {
	Nodes []string   `yaml:"nodes"`
	Start []string   `yaml:"start"`
	Edges []EdgeSpec `yaml:"edges"`
}

// EdgeSpec is one labeled, weighted database edge.
type EdgeSpec struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Label  string  `yaml:"label"`
	Weight float64 `yaml:"weight"`
}

// Load reads the dataset file at path.
func Load(path string, opts Options) (rpq.Inputs, error) {
	f, err := os.Open(path)
	if err != nil {
		return rpq.Inputs{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	in, err := Decode(f, opts)
	if err != nil {
		return rpq.Inputs{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Decode reads a dataset document from r and builds the three graphs.
// Unknown keys are rejected.
func Decode(r io.Reader, opts Options) (rpq.Inputs, error) {
	var doc File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return rpq.Inputs{}, fmt.Errorf("dataset: parse: %w", err)
	}
	return doc.Build(opts)
}

// Build converts the document into rpq.Inputs.
func (doc File) Build(opts Options) (rpq.Inputs, error) {
	if doc.Query == nil {
		return rpq.Inputs{}, fmt.Errorf("%w: query", ErrMissingSection)
	}
	if doc.Database == nil {
		return rpq.Inputs{}, fmt.Errorf("%w: database", ErrMissingSection)
	}

	q, err := doc.Query.buildQuery()
	if err != nil {
		return rpq.Inputs{}, err
	}

	var t *automaton.Automaton
	switch {
	case opts.GenerateTransducer:
		t, err = automaton.IdentityTransducer(q.Labels(), opts.GeneratedCost)
	case doc.Transducer == nil:
		return rpq.Inputs{}, fmt.Errorf("%w: transducer", ErrMissingSection)
	default:
		t, err = doc.Transducer.buildTransducer()
	}
	if err != nil {
		return rpq.Inputs{}, fmt.Errorf("dataset: transducer: %w", err)
	}

	db, err := doc.Database.build()
	if err != nil {
		return rpq.Inputs{}, err
	}

	return rpq.Inputs{Query: q, Transducer: t, Database: db}, nil
}

func (s *AutomatonSpec) buildQuery() (*automaton.Automaton, error) {
	a := automaton.NewQuery()
	if err := s.addStates(a); err != nil {
		return nil, fmt.Errorf("dataset: query: %w", err)
	}
	for i, tr := range s.Transitions {
		if err := a.AddTransition(tr.From, tr.To, tr.Label); err != nil {
			return nil, fmt.Errorf("dataset: query transition %d: %w", i, err)
		}
	}
	if err := s.markStates(a); err != nil {
		return nil, fmt.Errorf("dataset: query: %w", err)
	}
	return a, nil
}

func (s *AutomatonSpec) buildTransducer() (*automaton.Automaton, error) {
	a := automaton.NewTransducer()
	if err := s.addStates(a); err != nil {
		return nil, err
	}
	for i, tr := range s.Transitions {
		in := tr.In
		if in == "" {
			in = tr.Label
		}
		if err := a.AddTranslation(tr.From, tr.To, in, tr.Out, tr.Cost); err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
	}
	if err := s.markStates(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AutomatonSpec) addStates(a *automaton.Automaton) error {
	for _, id := range s.States {
		if err := a.AddState(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *AutomatonSpec) markStates(a *automaton.Automaton) error {
	for _, id := range s.Initial {
		if err := a.SetInitial(id); err != nil {
			return err
		}
	}
	for _, id := range s.Final {
		if err := a.SetFinal(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *DatabaseSpec) build() (*automaton.Database, error) {
	db := automaton.NewDatabase()
	for _, id := range s.Nodes {
		if err := db.AddNode(id); err != nil {
			return nil, fmt.Errorf("dataset: database: %w", err)
		}
	}
	for i, e := range s.Edges {
		if err := db.AddEdge(e.From, e.To, e.Label, e.Weight); err != nil {
			return nil, fmt.Errorf("dataset: database edge %d: %w", i, err)
		}
	}
	for _, id := range s.Start {
		if err := db.SetStart(id); err != nil {
			return nil, fmt.Errorf("dataset: database: %w", err)
		}
	}
	return db, nil
}

// LoadSample decodes a bundled sample by name.
func LoadSample(name string, opts Options) (rpq.Inputs, error) {
	f, err := samplesFS.Open("samples/" + name + ".yaml")
	if err != nil {
		return rpq.Inputs{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownSample, name, strings.Join(Samples(), ", "))
	}
	defer f.Close()

	in, err := Decode(f, opts)
	if err != nil {
		return rpq.Inputs{}, fmt.Errorf("sample %q: %w", name, err)
	}
	return in, nil
}

// Samples returns the names of the bundled samples, sorted.
func Samples() []string {
	entries, _ := samplesFS.ReadDir("samples")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}
