package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wrpq/answers"
	"github.com/katalvlaran/wrpq/automaton"
	"github.com/katalvlaran/wrpq/dataset"
	"github.com/katalvlaran/wrpq/rpq"
)

const chain = `
query:
  states: [q0, q1, spare]
  initial: [q0]
  final: [q1]
  transitions:
    - {from: q0, to: q1, label: a}
transducer:
  initial: [t0]
  final: [t1]
  transitions:
    - {from: t0, to: t1, in: a, out: b, cost: 2}
    - {from: t0, to: t1, label: a, cost: 5}
database:
  nodes: [x, y, lonely]
  start: [x]
  edges:
    - {from: x, to: y, label: b, weight: 1}
    - {from: x, to: y, label: a, weight: 0.5}
`

func TestDecode_BuildsGraphs(t *testing.T) {
	in, err := dataset.Decode(strings.NewReader(chain), dataset.Options{})
	require.NoError(t, err)

	require.Equal(t, []string{"q0", "q1", "spare"}, in.Query.States())
	require.Equal(t, []string{"q0"}, in.Query.Initial())
	require.Equal(t, []string{"q1"}, in.Query.Final())

	require.Equal(t, []string{"t0"}, in.Transducer.Initial())
	require.Equal(t, []string{"t1"}, in.Transducer.Final())
	steps := in.Transducer.Step("t0", "a")
	require.Len(t, steps, 2)
	require.Equal(t, "b", steps[0].OutputLabel())
	require.Equal(t, 2.0, steps[0].Weight)
	require.Equal(t, "a", steps[1].OutputLabel())

	require.Equal(t, []string{"lonely", "x", "y"}, in.Database.Nodes())
	require.Equal(t, []string{"x"}, in.Database.StartNodes())

	res, err := rpq.NewEvaluator().Evaluate(in, rpq.Query{Mode: rpq.ModeClassic})
	require.NoError(t, err)
	want := answers.Map{{Source: "x", Target: "y"}: 3}
	require.Empty(t, cmp.Diff(want, res.Answers))
}

func TestDecode_GenerateTransducer(t *testing.T) {
	doc := `
query:
  initial: [q0]
  final: [q1]
  transitions:
    - {from: q0, to: q1, label: a}
    - {from: q1, to: q1, label: a}
database:
  edges:
    - {from: x, to: y, label: a, weight: 1}
    - {from: y, to: z, label: a, weight: 1}
`
	in, err := dataset.Decode(strings.NewReader(doc), dataset.Options{GenerateTransducer: true, GeneratedCost: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"t0"}, in.Transducer.States())

	res, err := rpq.NewEvaluator().Evaluate(in, rpq.Query{Mode: rpq.ModeClassic})
	require.NoError(t, err)
	want := answers.Map{
		{Source: "x", Target: "y"}: 2,
		{Source: "x", Target: "z"}: 4,
		{Source: "y", Target: "z"}: 2,
	}
	require.Empty(t, cmp.Diff(want, res.Answers))
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		opts dataset.Options
		is   error
	}{
		{name: "empty document", doc: "", is: dataset.ErrMissingSection},
		{name: "no database", doc: "query: {}\ntransducer: {}\n", is: dataset.ErrMissingSection},
		{name: "no transducer", doc: "query: {}\ndatabase: {}\n", is: dataset.ErrMissingSection},
		{name: "unknown initial", doc: "query: {initial: [nope]}\ntransducer: {}\ndatabase: {}\n", is: automaton.ErrStateNotFound},
		{name: "unknown start", doc: "query: {}\ntransducer: {}\ndatabase: {start: [nope]}\n", is: automaton.ErrNodeNotFound},
		{name: "negative weight", doc: "query: {transitions: [{from: a, to: b, label: x}]}\ntransducer: {}\ndatabase: {edges: [{from: a, to: b, label: x, weight: -1}]}\n"},
		{name: "unknown key", doc: "query: {}\ndatabase: {}\nextra: 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Decode(strings.NewReader(tc.doc), tc.opts)
			require.Error(t, err)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestDecode_GenerateSkipsMissingTransducer(t *testing.T) {
	_, err := dataset.Decode(strings.NewReader("query: {}\ndatabase: {}\n"), dataset.Options{GenerateTransducer: true})
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chain), 0o600))

	in, err := dataset.Load(path, dataset.Options{})
	require.NoError(t, err)
	require.NotNil(t, in.Query)

	_, err = dataset.Load(filepath.Join(t.TempDir(), "absent.yaml"), dataset.Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSamples(t *testing.T) {
	require.Equal(t, []string{"social", "travel"}, dataset.Samples())

	_, err := dataset.LoadSample("nope", dataset.Options{})
	require.ErrorIs(t, err, dataset.ErrUnknownSample)

	in, err := dataset.LoadSample("social", dataset.Options{})
	require.NoError(t, err)
	res, err := rpq.NewEvaluator().Evaluate(in, rpq.Query{Mode: rpq.ModeClassic})
	require.NoError(t, err)
	want := answers.Map{
		{Source: "ann", Target: "bob"}: 1,
		{Source: "ann", Target: "cat"}: 1,
		{Source: "ann", Target: "dan"}: 3,
		{Source: "bob", Target: "cat"}: 0,
		{Source: "bob", Target: "dan"}: 2,
		{Source: "cat", Target: "dan"}: 2,
	}
	require.Empty(t, cmp.Diff(want, res.Answers))

	in, err = dataset.LoadSample("travel", dataset.Options{})
	require.NoError(t, err)
	res, err = rpq.NewEvaluator().Evaluate(in, rpq.Query{Mode: rpq.ModeClassic})
	require.NoError(t, err)
	want = answers.Map{
		{Source: "Kyiv", Target: "Lviv"}:   4,
		{Source: "Kyiv", Target: "Krakow"}: 5,
	}
	require.Empty(t, cmp.Diff(want, res.Answers))
}
