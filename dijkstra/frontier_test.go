package dijkstra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrontier_OrderAndReposition(t *testing.T) {
	f := newFrontier(4)
	inf := math.Inf(1)
	f.push(0, 0)
	f.push(1, inf)
	f.push(2, inf)
	f.push(3, 5)
	require.Equal(t, 4, f.len())

	// Ties on +Inf break by index.
	f.reposition(2, inf, 1)
	it, ok := f.popMin()
	require.True(t, ok)
	require.Equal(t, item{dist: 0, index: 0}, it)
	require.False(t, f.contains(0))

	// Extracted entries are never re-inserted.
	f.reposition(0, 0, 0)
	require.Equal(t, 3, f.len())

	var got []int
	for f.len() > 0 {
		it, _ := f.popMin()
		got = append(got, it.index)
	}
	require.Equal(t, []int{2, 3, 1}, got)

	_, ok = f.popMin()
	require.False(t, ok)
}

func TestFrontier_Reset(t *testing.T) {
	f := newFrontier(2)
	f.push(0, 1)
	f.push(1, 2)
	f.reset()
	require.Equal(t, 0, f.len())
	require.False(t, f.contains(0))
	require.False(t, f.contains(1))
}
