package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wrpq/automaton"
	"github.com/katalvlaran/wrpq/core"
)

func TestQuery_InitialFinal(t *testing.T) {
	q := automaton.NewQuery()
	require.NoError(t, q.AddTransition("q0", "q1", "knows"))
	require.NoError(t, q.AddTransition("q1", "q1", "knows"))

	require.ErrorIs(t, q.SetInitial("qx"), automaton.ErrStateNotFound)
	require.NoError(t, q.SetInitial("q0"))
	require.NoError(t, q.SetFinal("q1"))

	require.True(t, q.IsInitial("q0"))
	require.False(t, q.IsFinal("q0"))
	require.Equal(t, []string{"q0"}, q.Initial())
	require.Equal(t, []string{"q1"}, q.Final())
	require.Equal(t, []string{"q0", "q1"}, q.States())
	require.Len(t, q.Step("q1", "knows"), 1)
	require.Len(t, q.Transitions("q0"), 1)
	require.Nil(t, q.Transitions("qx"))

	err := q.AddTransition("q0", "q1", "")
	require.ErrorIs(t, err, core.ErrEmptyLabel)
}

func TestQuery_RejectsWeights(t *testing.T) {
	// Query transitions are cost-free; weights live in the transducer.
	q := automaton.NewQuery()
	require.ErrorIs(t, q.AddTranslation("q0", "q1", "a", "", 1), core.ErrBadWeight)
}

func TestTransducer_Translation(t *testing.T) {
	tr := automaton.NewTransducer()
	require.NoError(t, tr.AddTranslation("t0", "t0", "knows", "", 0))
	require.NoError(t, tr.AddTranslation("t0", "t0", "knows", "likes", 2.5))
	require.ErrorIs(t, tr.AddTranslation("t0", "t0", "knows", "", -1), core.ErrNegativeWeight)

	edges := tr.Step("t0", "knows")
	require.Len(t, edges, 2)
	require.Equal(t, "knows", edges[0].OutputLabel())
	require.Equal(t, "likes", edges[1].OutputLabel())
	require.Equal(t, 2.5, edges[1].Weight)
}

func TestDatabase_StartNodes(t *testing.T) {
	db := automaton.NewDatabase()
	require.NoError(t, db.AddEdge("alice", "bob", "knows", 0))
	require.NoError(t, db.AddEdge("bob", "carol", "knows", 1.5))
	require.NoError(t, db.AddNode("dave"))

	require.Equal(t, []string{"alice", "bob", "carol", "dave"}, db.StartNodes())
	require.ErrorIs(t, db.SetStart("zed"), automaton.ErrNodeNotFound)
	require.NoError(t, db.SetStart("bob"))
	require.Equal(t, []string{"bob"}, db.StartNodes())
	require.Len(t, db.Nodes(), 4)
	require.Len(t, db.Step("bob", "knows"), 1)
}

func TestIdentityTransducer(t *testing.T) {
	tr, err := automaton.IdentityTransducer([]string{"a", "b"}, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"t0"}, tr.Initial())
	require.Equal(t, []string{"t0"}, tr.Final())
	for _, l := range []string{"a", "b"} {
		steps := tr.Step("t0", l)
		require.Len(t, steps, 1)
		require.Equal(t, l, steps[0].OutputLabel())
		require.Equal(t, 1.0, steps[0].Weight)
	}
}
