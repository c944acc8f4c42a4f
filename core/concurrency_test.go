package core_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wrpq/core"
)

// TestGraph_ConcurrentBuild adds edges from several goroutines while readers
// query the label index; run with -race.
func TestGraph_ConcurrentBuild(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			from := "v" + strconv.Itoa(w)
			for i := 0; i < perWorker; i++ {
				_, err := g.AddEdge(from, "hub", "l", float64(i))
				assert.NoError(t, err)
				_ = g.OutEdgesByLabel(from, "l")
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, g.EdgeCount())
	require.Equal(t, workers+1, g.VertexCount())
}
