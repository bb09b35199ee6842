package dag

import (
	"slices"
	"testing"
)

func TestBuildIndexSortsEndpoints(t *testing.T) {
	idx := BuildIndex([]Edge{
		{From: "x#B", To: "x#A"},
		{From: "w#C", To: "x#B"},
		{From: "", To: "z#D"},
	})

	wantNames := []string{"w#C", "x#A", "x#B", "z#D"}
	if !slices.Equal(idx.IDToName, wantNames) {
		t.Fatalf("IDToName = %v, want %v", idx.IDToName, wantNames)
	}
	for i, want := range wantNames {
		if id, ok := idx.NameToID[want]; !ok || int(id) != i {
			t.Fatalf("NameToID[%q] = %v, want %d", want, id, i)
		}
	}
}

func TestBuildGraphDeduplicatesEdges(t *testing.T) {
	edges := []Edge{
		{From: "a", To: "c"},
		{From: "a", To: "b"},
		{From: "a", To: "c"},
	}
	idx := BuildIndex(edges)
	g := BuildGraph(idx, edges)

	a, b, c := idx.NameToID["a"], idx.NameToID["b"], idx.NameToID["c"]
	if got := g.Edges[a]; !slices.Equal(got, []NodeID{b, c}) {
		t.Fatalf("a edges = %v, want [%v %v]", got, b, c)
	}
	if g.Indeg[c] != 1 {
		t.Fatalf("indeg(c) = %d, want 1", g.Indeg[c])
	}
	if g.OutDegree(a) != 2 || g.OutDegree(b) != 0 {
		t.Fatalf("unexpected out degrees: %v", g.Edges)
	}
}

func TestToposortKahnBatches(t *testing.T) {
	edges := []Edge{
		{From: "b", To: "c"},
		{From: "a", To: "c"},
		{From: "c", To: "d"},
	}
	idx := BuildIndex(edges)
	topo := ToposortKahn(BuildGraph(idx, edges))
	if topo.Cyclic {
		t.Fatalf("expected acyclic graph")
	}

	if got := idx.Names(topo.Order); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("order = %v", got)
	}
	want := [][]string{{"a", "b"}, {"c"}, {"d"}}
	if len(topo.Batches) != len(want) {
		t.Fatalf("batches = %v, want %v", topo.Batches, want)
	}
	for i := range want {
		if got := idx.Names(topo.Batches[i]); !slices.Equal(got, want[i]) {
			t.Fatalf("batch[%d] = %v, want %v", i, got, want[i])
		}
	}
}

func TestToposortKahnCycles(t *testing.T) {
	edges := []Edge{
		{From: "start", To: "a"},
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
		{From: "c", To: "tail"},
	}
	idx := BuildIndex(edges)
	g := BuildGraph(idx, edges)
	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatalf("expected a cycle")
	}
	if got := idx.Names(topo.Cycles); !slices.Equal(got, []string{"a", "b", "c", "tail"}) {
		t.Fatalf("cycles = %v", got)
	}

	cycle := CycleFrom(g, topo, idx.NameToID["b"])
	if got := idx.Names(cycle); !slices.Equal(got, []string{"b", "c", "a", "b"}) {
		t.Fatalf("cycle from b = %v", got)
	}
	if got := CycleFrom(g, topo, idx.NameToID["tail"]); got != nil {
		t.Fatalf("tail is behind the cycle, got %v", idx.Names(got))
	}
	if got := CycleFrom(g, topo, idx.NameToID["start"]); got != nil {
		t.Fatalf("start was sorted, got %v", idx.Names(got))
	}
}

func TestSelfEdgeIsACycle(t *testing.T) {
	edges := []Edge{{From: "a", To: "a"}}
	idx := BuildIndex(edges)
	g := BuildGraph(idx, edges)
	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatalf("self edge must be cyclic")
	}
	if got := idx.Names(CycleFrom(g, topo, 0)); !slices.Equal(got, []string{"a", "a"}) {
		t.Fatalf("cycle = %v", got)
	}
}
