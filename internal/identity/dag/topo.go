package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []NodeID   // linear order
	Batches [][]NodeID // waves of independent nodes
	Cyclic  bool
	Cycles  []NodeID // nodes left with positive in-degree
}

func nodeID(i int) NodeID {
	id, err := safecast.Conv[NodeID](i)
	if err != nil {
		panic(fmt.Errorf("node id overflow: %w", err))
	}
	return id
}

func ToposortKahn(g Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := slices.Clone(g.Indeg)

	topo := &Topo{
		Order:   make([]NodeID, 0, nodeCount),
		Batches: make([][]NodeID, 0),
	}

	current := make([]NodeID, 0, nodeCount)
	for i := range nodeCount {
		if indeg[i] == 0 {
			current = append(current, nodeID(i))
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]NodeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != nodeCount {
		topo.Cyclic = true
		for i := range nodeCount {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, nodeID(i))
			}
		}
	}

	return topo
}

// CycleFrom walks successors from start, staying inside the stuck nodes of
// topo, until a node repeats. It returns the closed path, first node
// repeated at the end, or nil when no cycle is reachable that way.
func CycleFrom(g Graph, topo *Topo, start NodeID) []NodeID {
	if !topo.Cyclic || !slices.Contains(topo.Cycles, start) {
		return nil
	}
	pos := make(map[NodeID]int)
	var path []NodeID
	for id := start; ; {
		if at, seen := pos[id]; seen {
			return append(path[at:], id)
		}
		pos[id] = len(path)
		path = append(path, id)
		next, ok := firstStuck(g, topo, id)
		if !ok {
			return nil
		}
		id = next
	}
}

func firstStuck(g Graph, topo *Topo, id NodeID) (NodeID, bool) {
	for _, to := range g.Edges[int(id)] {
		if _, found := slices.BinarySearch(topo.Cycles, to); found {
			return to, true
		}
	}
	return 0, false
}
