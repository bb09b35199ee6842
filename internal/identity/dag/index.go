package dag

import (
	"slices"
)

type NodeID uint32

// Edge is a directed link between two named nodes.
type Edge struct {
	From string
	To   string
}

type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// BuildIndex collects every endpoint name, sorts them and hands out IDs
// in that order so the numbering is stable across runs.
func BuildIndex(edges []Edge) Index {
	uniq := make(map[string]struct{}, len(edges)*2)
	for _, e := range edges {
		if e.From != "" {
			uniq[e.From] = struct{}{}
		}
		if e.To != "" {
			uniq[e.To] = struct{}{}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	slices.Sort(names)

	nameToID := make(map[string]NodeID, len(names))
	for i, name := range names {
		nameToID[name] = NodeID(i)
	}

	return Index{
		NameToID: nameToID,
		IDToName: names,
	}
}

func (idx Index) Names(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
