package dijkstra

import "github.com/tidwall/btree"

// item is a frontier entry: a node index keyed by its current distance.
type item struct {
	dist  float64
	index int
}

// itemLess orders by distance, then node index.
func itemLess(a, b item) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.index < b.index
}

// frontier is the min-priority set of nodes not yet extracted in this run.
type frontier struct {
	tree    *btree.BTreeG[item]
	present []bool
}

func newFrontier(n int) *frontier {
	return &frontier{
		tree:    btree.NewBTreeGOptions(itemLess, btree.Options{NoLocks: true}),
		present: make([]bool, n),
	}
}

// reset empties the frontier.
func (f *frontier) reset() {
	f.tree.Clear()
	for i := range f.present {
		f.present[i] = false
	}
}

// push inserts index with the given distance.
func (f *frontier) push(index int, dist float64) {
	f.tree.Set(item{dist: dist, index: index})
	f.present[index] = true
}

// popMin removes and returns the entry with the smallest distance.
func (f *frontier) popMin() (item, bool) {
	it, ok := f.tree.PopMin()
	if ok {
		f.present[it.index] = false
	}

	return it, ok
}

// reposition moves index from old to dist if it is still in the frontier.
func (f *frontier) reposition(index int, old, dist float64) {
	if !f.contains(index) {
		return
	}
	f.tree.Delete(item{dist: old, index: index})
	f.tree.Set(item{dist: dist, index: index})
}

// contains reports whether index has not been extracted yet.
func (f *frontier) contains(index int) bool { return f.present[index] }

func (f *frontier) len() int { return f.tree.Len() }
