package product

// Visitation colours for the zero-cost cycle search.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// ZeroCostCycle reports one cycle made only of zero-cost edges, if any.
// Such a cycle is where an iteration cap may cut a search short, so callers
// use it as a diagnostic before searching.
//
// Three-colour DFS restricted to zero-cost edges; a gray→gray edge closes a
// cycle, which is rebuilt from the DFS path. Iterative to keep deep product
// graphs off the goroutine stack.
//
// Complexity: O(V + E).
func (g *Graph) ZeroCostCycle() ([]*Node, bool) {
	state := make([]uint8, len(g.nodes))
	type frame struct {
		node *Node
		next int // index of the next edge to inspect
	}

	for _, root := range g.nodes {
		if state[root.Index] != white {
			continue
		}
		stack := []frame{{node: root}}
		state[root.Index] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.node.Edges) {
				state[top.node.Index] = black
				stack = stack[:len(stack)-1]
				continue
			}
			e := top.node.Edges[top.next]
			top.next++
			if e.Cost != 0 {
				continue
			}
			switch state[e.To.Index] {
			case white:
				state[e.To.Index] = gray
				stack = append(stack, frame{node: e.To})
			case gray:
				// Back-edge: the cycle is the path suffix starting at e.To.
				start := len(stack) - 1
				for stack[start].node != e.To {
					start--
				}
				cycle := make([]*Node, 0, len(stack)-start)
				for _, f := range stack[start:] {
					cycle = append(cycle, f.node)
				}

				return cycle, true
			}
		}
	}

	return nil, false
}
