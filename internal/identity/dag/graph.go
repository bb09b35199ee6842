package dag

import (
	"slices"
)

type Graph struct {
	Edges [][]NodeID // Edges[from] = []to
	Indeg []int      // in-degrees for Kahn
}

// BuildGraph turns named edges into adjacency lists. Repeated edges are
// kept once; self edges are kept so that Kahn reports them as cycles.
func BuildGraph(idx Index, edges []Edge) Graph {
	nodeCount := len(idx.IDToName)
	g := Graph{
		Edges: make([][]NodeID, nodeCount),
		Indeg: make([]int, nodeCount),
	}

	for _, e := range edges {
		from, okFrom := idx.NameToID[e.From]
		to, okTo := idx.NameToID[e.To]
		if !okFrom || !okTo {
			// BuildIndex saw the same edges, only empty names land here
			continue
		}
		if slices.Contains(g.Edges[from], to) {
			continue
		}
		g.Edges[from] = append(g.Edges[from], to)
		g.Indeg[to]++
	}
	for from := range g.Edges {
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}
	return g
}

// OutDegree reports how many distinct successors id has.
func (g Graph) OutDegree(id NodeID) int {
	return len(g.Edges[int(id)])
}
